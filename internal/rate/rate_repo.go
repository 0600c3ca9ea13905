package rate

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rate_repo.go -destination=mock/rate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rate *EmployeeRate) error
	ResolveAt(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*EmployeeRate, error)
	FindAllByEmployee(ctx context.Context, organizationID, employeeID string) ([]EmployeeRate, error)
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

// Create appends one history row. It goes through the transaction when one
// is bound so a failed Add leaves no partial history behind.
func (r *repository) Create(ctx context.Context, rate *EmployeeRate) error {
	query := `
        INSERT INTO employee_rates (
            id, organization_id, employee_id, hourly_rate, effective_from, created_at, created_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		rate.ID, rate.OrganizationID, rate.EmployeeID,
		rate.HourlyRate, rate.EffectiveFrom, rate.CreatedAt, rate.CreatedBy,
	)
	return err
}

func (r *repository) ResolveAt(
	ctx context.Context,
	organizationID, employeeID string,
	asOf time.Time,
) (*EmployeeRate, error) {
	var rate EmployeeRate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Where("effective_from <= ?", asOf).
		Order("effective_from DESC").
		Order("created_at DESC").
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, organizationID, employeeID string) ([]EmployeeRate, error) {
	var rates []EmployeeRate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Order("created_at DESC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
