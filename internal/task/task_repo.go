package task

import (
	"context"
	"time"

	"go-payops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	// FindPayable returns completed/verified tasks for the project whose
	// completion instant falls inside the period and which no payroll
	// record has consumed yet.
	FindPayable(ctx context.Context, organizationID, projectID string, periodStart, periodEnd time.Time) ([]Task, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindPayable(
	ctx context.Context,
	organizationID, projectID string,
	periodStart, periodEnd time.Time,
) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("project_id = ?", projectID).
		Where("status IN ?", []string{StatusCompleted, StatusVerified}).
		Where("completed_at BETWEEN ? AND ?", periodStart, periodEnd).
		Where("id NOT IN (SELECT task_id FROM payroll_record_tasks)").
		Order("assigned_to ASC, completed_at ASC").
		Find(&tasks).Error
	return tasks, err
}
