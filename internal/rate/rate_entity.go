package rate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeRate is one entry in the append-only rate history. Rate changes
// are new rows, never edits; the row in effect at an instant is the one
// with the latest effective_from at or before it.
type EmployeeRate struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;index"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;index:idx_rate_employee_effective,unique"`
	HourlyRate     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	EffectiveFrom  time.Time       `gorm:"not null;index:idx_rate_employee_effective,unique"`
	CreatedAt      time.Time
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null"`
}
