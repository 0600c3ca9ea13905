package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const StatusApproved = "approved"

type Expense struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	ProjectID      uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;index"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status         string          `gorm:"type:varchar(20);index"`
	ApprovedAt     *time.Time      `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
