package payroll

type CalculatePayrollRequest struct {
	ProjectID   string `json:"project_id" binding:"required,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// PayrollCalculationSummary is one display row per employee seen during a
// calculation, produced whether or not a record was created for them.
type PayrollCalculationSummary struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	TaskCount        int     `json:"task_count"`
	HoursWorked      string  `json:"hours_worked"`
	HourlyRate       string  `json:"hourly_rate"`
	TaskPay          string  `json:"task_pay"`
	ApprovedExpenses string  `json:"approved_expenses"`
	NetPay           string  `json:"net_pay"`
	RecordID         *string `json:"record_id,omitempty"`
	Note             string  `json:"note,omitempty"`
}

type CalculatePayrollResponse struct {
	Summaries        []PayrollCalculationSummary `json:"summaries"`
	CreatedRecordIDs []string                    `json:"created_record_ids"`
}

type PayrollRecordResponse struct {
	ID               string  `json:"id"`
	OrganizationID   string  `json:"organization_id"`
	EmployeeID       string  `json:"employee_id"`
	ProjectID        string  `json:"project_id"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
	HoursWorked      string  `json:"hours_worked"`
	HourlyRate       string  `json:"hourly_rate"`
	TaskPay          string  `json:"task_pay"`
	ApprovedExpenses string  `json:"approved_expenses"`
	Deductions       string  `json:"deductions"`
	NetPay           string  `json:"net_pay"`
	Status           string  `json:"status"`
	Locked           bool    `json:"locked"`
	GeneratedBy      string  `json:"generated_by"`
	GeneratedAt      string  `json:"generated_at"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
}
