package payrollrun

import (
	"context"
	"database/sql"

	"go-payops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=run_repo.go -destination=mock/run_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, run *PayrollRun) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]PayrollRun, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayrollRun, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, run *PayrollRun) error {
	query := `
        INSERT INTO payroll_runs (
            id, organization_id, period_start, period_end,
            total_amount, status, method, created_by, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		run.ID, run.OrganizationID, run.PeriodStart, run.PeriodEnd,
		run.TotalAmount, run.Status, run.Method, run.CreatedBy,
		run.CreatedAt, run.CreatedAt,
	)
	return err
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
