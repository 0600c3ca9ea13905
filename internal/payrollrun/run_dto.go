package payrollrun

import "go-payops/internal/payout"

type RunPayrollRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	Method      string `json:"method" binding:"omitempty,oneof=auto manual"`
}

// SkippedEmployee explains why a record produced no payout in this run.
type SkippedEmployee struct {
	EmployeeID      string `json:"employee_id"`
	PayrollRecordID string `json:"payroll_record_id"`
	Reason          string `json:"reason"`
}

type PayrollRunResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	TotalAmount    string `json:"total_amount"`
	Status         string `json:"status"`
	Method         string `json:"method"`
	CreatedBy      string `json:"created_by"`
	CreatedAt      string `json:"created_at"`
}

type RunPayrollResponse struct {
	Run        PayrollRunResponse            `json:"run"`
	Payouts    []payout.PayoutRecordResponse `json:"payouts"`
	BankExport string                        `json:"bank_export"`
	Skipped    []SkippedEmployee             `json:"skipped"`
}
