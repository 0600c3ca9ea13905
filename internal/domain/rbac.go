package domain

// EnforceRequest is the shared authorization check shape so middleware
// does not depend on the rbac package directly.
type EnforceRequest struct {
	EmployeeID     string
	OrganizationID string
	Resource       string
	Action         string
}
