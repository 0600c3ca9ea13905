package expense

import (
	"context"
	"time"

	"go-payops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	// FindPayable returns approved expenses for (employee, project) whose
	// approval instant falls inside the period and which no payroll record
	// has consumed yet.
	FindPayable(ctx context.Context, organizationID, projectID, employeeID string, periodStart, periodEnd time.Time) ([]Expense, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindPayable(
	ctx context.Context,
	organizationID, projectID, employeeID string,
	periodStart, periodEnd time.Time,
) ([]Expense, error) {
	var expenses []Expense
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("project_id = ?", projectID).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("approved_at BETWEEN ? AND ?", periodStart, periodEnd).
		Where("id NOT IN (SELECT expense_id FROM payroll_record_expenses)").
		Order("approved_at ASC").
		Find(&expenses).Error
	return expenses, err
}
