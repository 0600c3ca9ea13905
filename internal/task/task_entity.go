package task

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusCompleted = "completed"
	StatusVerified  = "verified"
)

type Task struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	ProjectID      uuid.UUID `gorm:"type:uuid;index"`
	AssignedTo     uuid.UUID `gorm:"type:uuid;index"`
	Title          string
	Status         string `gorm:"type:varchar(20);index"`
	ElapsedSeconds int64  `gorm:"not null;default:0"`

	// CompletedAt is stamped exactly once, on the transition into
	// completed/verified, and is the payroll-eligibility instant.
	CompletedAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
