package rate

import "github.com/shopspring/decimal"

type AddRateRequest struct {
	EmployeeID    string          `json:"employee_id" binding:"required,uuid"`
	HourlyRate    decimal.Decimal `json:"hourly_rate" binding:"required"`
	EffectiveFrom string          `json:"effective_from" binding:"required"`
}

type RateResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	HourlyRate    string `json:"hourly_rate"`
	EffectiveFrom string `json:"effective_from"`
	CreatedAt     string `json:"created_at"`
	CreatedBy     string `json:"created_by"`
}
