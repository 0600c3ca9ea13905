package payrollrun

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// PayrollRun is one payout batch over a period. Auto runs stay pending
// until the gateway settles each payout; manual runs record money that
// already moved and are paid on creation.
type PayrollRun struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`

	PeriodStart time.Time `gorm:"not null"`
	PeriodEnd   time.Time `gorm:"not null"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'pending'"`
	Method      string          `gorm:"type:varchar(10);not null"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
