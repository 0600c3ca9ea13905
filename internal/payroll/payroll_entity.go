package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollRecord is one employee's pay for one project and period.
// draft -> approved happens through the approval endpoint; approved ->
// locked happens only inside a payroll run, atomically with payout
// creation. Locked records never change again.
type PayrollRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_payroll_org_status"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProjectID      uuid.UUID `gorm:"type:uuid;not null;index"`

	PeriodStart time.Time `gorm:"not null"`
	PeriodEnd   time.Time `gorm:"not null"`

	HoursWorked      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	HourlyRate       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TaskPay          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ApprovedExpenses decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Deductions       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetPay           decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Status string `gorm:"type:varchar(20);not null;default:'draft';index:idx_payroll_org_status"`
	Locked bool   `gorm:"not null;default:false"`

	GeneratedBy uuid.UUID `gorm:"type:uuid;not null"`
	GeneratedAt time.Time `gorm:"not null"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Tasks    []PayrollRecordTask    `gorm:"foreignKey:PayrollRecordID"`
	Expenses []PayrollRecordExpense `gorm:"foreignKey:PayrollRecordID"`
}

// PayrollRecordTask marks a task as consumed by a record. The task id being
// the primary key is what makes double pay impossible at the store level.
type PayrollRecordTask struct {
	TaskID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayrollRecordID uuid.UUID `gorm:"type:uuid;not null;index"`
}

type PayrollRecordExpense struct {
	ExpenseID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayrollRecordID uuid.UUID `gorm:"type:uuid;not null;index"`
}
