package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	FullName       string
	Email          string `gorm:"uniqueIndex"`

	// Bank details live on the profile; all fields empty means the
	// employee never completed payout onboarding.
	BankAccountNumber string
	BankIfscOrSwift   string
	AccountHolderName string
	UpiID             *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BankDetails is the payout-facing projection of the profile fields.
type BankDetails struct {
	AccountNumber     string
	IfscOrSwift       string
	AccountHolderName string
	UpiID             *string
}
