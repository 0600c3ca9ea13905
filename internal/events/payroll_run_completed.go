package events

import "time"

const PayrollRunCompletedTopic = "payops.payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType      string    `json:"event_type"`
	RunID          string    `json:"run_id"`
	OrganizationID string    `json:"organization_id"`
	PeriodStart    string    `json:"period_start"`
	PeriodEnd      string    `json:"period_end"`
	TotalAmount    string    `json:"total_amount"`
	PayoutCount    int       `json:"payout_count"`
	SkippedCount   int       `json:"skipped_count"`
	Method         string    `json:"method"`
	TriggeredBy    string    `json:"triggered_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
