package notification

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPayoutTemplate is used when PAYOUT_NOTIFICATION_TEMPLATE is not set.
const DefaultPayoutTemplate = "✅ Your salary for {month} ₹{amount} has been processed."

// RenderPayoutMessage fills the operator-configurable payout template.
// {month} is the long month name of the period start, {amount} is fixed
// to two decimal places.
func RenderPayoutMessage(template string, periodStart time.Time, amount decimal.Decimal) string {
	if template == "" {
		template = DefaultPayoutTemplate
	}

	msg := strings.ReplaceAll(template, "{month}", periodStart.Month().String())
	msg = strings.ReplaceAll(msg, "{amount}", amount.StringFixed(2))
	return msg
}
