package notification_test

import (
	"testing"
	"time"

	"go-payops/internal/notification"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRenderPayoutMessage(t *testing.T) {
	periodStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("default template", func(t *testing.T) {
		msg := notification.RenderPayoutMessage("", periodStart, decimal.RequireFromString("47.5"))
		assert.Equal(t, "✅ Your salary for July ₹47.50 has been processed.", msg)
	})

	t.Run("custom template", func(t *testing.T) {
		msg := notification.RenderPayoutMessage(
			"Salary {amount} for {month} is on its way",
			periodStart,
			decimal.RequireFromString("1200"),
		)
		assert.Equal(t, "Salary 1200.00 for July is on its way", msg)
	})

	t.Run("amount always two decimals", func(t *testing.T) {
		msg := notification.RenderPayoutMessage("{amount}", periodStart, decimal.RequireFromString("10.239"))
		assert.Equal(t, "10.24", msg)
	})
}
