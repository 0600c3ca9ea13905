package payout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

const (
	MethodAuto   = "auto"
	MethodManual = "manual"
)

// PayoutRecord is the money-movement side of a locked payroll record.
// Auto payouts start pending and are resolved by the gateway callback;
// manual payouts are recorded as already settled.
type PayoutRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID  uuid.UUID `gorm:"type:uuid;not null;index:idx_payout_org_status"`
	PayrollRecordID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PayrollRunID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index"`

	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method string          `gorm:"type:varchar(10);not null"`
	Status string          `gorm:"type:varchar(20);not null;default:'pending';index:idx_payout_org_status"`

	// bank details captured when the payout was created; a regenerated
	// export must match the batch as disbursed, not the current profile
	BankAccountNumber string `gorm:"type:varchar(34);not null"`
	BankIfsc          string `gorm:"type:varchar(11);not null"`

	FailureReason *string
	ProcessedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
