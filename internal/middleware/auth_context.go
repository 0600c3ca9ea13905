package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	headerOrganizationID = "X-Organization-ID"
	headerEmployeeID     = "X-Employee-ID"
)

// AuthContext trusts the identity headers stamped by the upstream gateway.
// Authentication itself happens before requests reach this service; here we
// only require that the gateway forwarded a tenant and an actor.
func AuthContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := c.GetHeader(headerOrganizationID)
		employeeID := c.GetHeader(headerEmployeeID)

		if orgID == "" || employeeID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Missing identity headers",
			})
			return
		}

		c.Set(string(ContextOrganizationID), orgID)
		c.Set(string(ContextEmployeeID), employeeID)

		c.Next()
	}
}
