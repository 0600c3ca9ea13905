package payout

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// BankExportEntry is one disbursement row for the bank upload file.
type BankExportEntry struct {
	AccountNumber string
	IFSC          string
	Amount        decimal.Decimal
	Remarks       string
}

// GenerateBankExport renders the bank upload CSV. Row order follows the
// input slice, amounts are fixed to two decimal places, and fields
// containing commas or quotes are quoted per RFC 4180. The same entries
// always produce byte-identical output.
func GenerateBankExport(entries []BankExportEntry) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	// header spelled exactly as the bank ingester expects
	_ = w.Write([]string{"AccountNumber", "IFSC", "Amount", "Remarks"})

	for _, e := range entries {
		_ = w.Write([]string{
			e.AccountNumber,
			e.IFSC,
			e.Amount.StringFixed(2),
			e.Remarks,
		})
	}

	w.Flush()
	return sb.String()
}
