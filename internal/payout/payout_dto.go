package payout

type MarkFailedRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type PayoutRecordResponse struct {
	ID              string  `json:"id"`
	OrganizationID  string  `json:"organization_id"`
	PayrollRecordID string  `json:"payroll_record_id"`
	PayrollRunID    string  `json:"payroll_run_id"`
	EmployeeID      string  `json:"employee_id"`
	Amount          string  `json:"amount"`
	Method          string  `json:"method"`
	Status          string  `json:"status"`
	FailureReason   *string `json:"failure_reason,omitempty"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
