package payout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateBankExport(t *testing.T) {
	entries := []BankExportEntry{
		{AccountNumber: "123456789012", IFSC: "HDFC0001234", Amount: decimal.RequireFromString("47.5"), Remarks: "Payroll 2026-08-01"},
		{AccountNumber: "987654321098", IFSC: "SBIN0005678", Amount: decimal.RequireFromString("1200"), Remarks: "Payroll 2026-08-01"},
	}

	got := GenerateBankExport(entries)

	want := "AccountNumber,IFSC,Amount,Remarks\n" +
		"123456789012,HDFC0001234,47.50,Payroll 2026-08-01\n" +
		"987654321098,SBIN0005678,1200.00,Payroll 2026-08-01\n"
	assert.Equal(t, want, got)
}

func TestGenerateBankExport_Empty(t *testing.T) {
	assert.Equal(t, "AccountNumber,IFSC,Amount,Remarks\n", GenerateBankExport(nil))
}

func TestGenerateBankExport_QuotesUnsafeFields(t *testing.T) {
	entries := []BankExportEntry{
		{AccountNumber: "111122223333", IFSC: "ICIC0009999", Amount: decimal.RequireFromString("10"), Remarks: "Payroll, special run"},
	}

	got := GenerateBankExport(entries)
	assert.Contains(t, got, `"Payroll, special run"`)
}

func TestGenerateBankExport_Deterministic(t *testing.T) {
	entries := []BankExportEntry{
		{AccountNumber: "1", IFSC: "A", Amount: decimal.New(100, -2), Remarks: "Payroll 2026-01-01"},
		{AccountNumber: "2", IFSC: "B", Amount: decimal.New(200, -2), Remarks: "Payroll 2026-01-01"},
	}

	first := GenerateBankExport(entries)
	second := GenerateBankExport(entries)
	assert.Equal(t, first, second)
}
