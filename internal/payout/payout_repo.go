package payout

import (
	"context"
	"database/sql"
	"time"

	"go-payops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payout_repo.go -destination=mock/payout_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PayoutRecord) error
	FindAllByOrganization(ctx context.Context, organizationID, status string) ([]PayoutRecord, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayoutRecord, error)
	FindByRun(ctx context.Context, organizationID, runID string) ([]PayoutRecord, error)
	SettleSuccess(ctx context.Context, organizationID, id string, at time.Time) (bool, error)
	SettleFailed(ctx context.Context, organizationID, id, reason string, at time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, p *PayoutRecord) error {
	query := `
        INSERT INTO payout_records (
            id, organization_id, payroll_record_id, payroll_run_id, employee_id,
            amount, method, status, bank_account_number, bank_ifsc,
            failure_reason, processed_at, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		p.ID, p.OrganizationID, p.PayrollRecordID, p.PayrollRunID, p.EmployeeID,
		p.Amount, p.Method, p.Status, p.BankAccountNumber, p.BankIfsc,
		p.FailureReason, p.ProcessedAt,
		p.CreatedAt, p.CreatedAt,
	)
	return err
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID, status string) ([]PayoutRecord, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var payouts []PayoutRecord
	err := q.Find(&payouts).Error
	return payouts, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayoutRecord, error) {
	var p PayoutRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByRun(ctx context.Context, organizationID, runID string) ([]PayoutRecord, error) {
	var payouts []PayoutRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("payroll_run_id = ?", runID).
		Order("created_at ASC").
		Find(&payouts).Error
	return payouts, err
}

// SettleSuccess flips a pending payout to success. The status guard means
// a duplicate gateway callback affects zero rows instead of re-settling.
func (r *repository) SettleSuccess(ctx context.Context, organizationID, id string, at time.Time) (bool, error) {
	query := `
UPDATE payout_records
SET status = $4, processed_at = $5, updated_at = $5
WHERE id = $1 AND organization_id = $2 AND status = $3
`
	res, err := r.execer().ExecContext(ctx, query, id, organizationID, StatusPending, StatusSuccess, at)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) SettleFailed(ctx context.Context, organizationID, id, reason string, at time.Time) (bool, error) {
	query := `
UPDATE payout_records
SET status = $4, failure_reason = $5, processed_at = $6, updated_at = $6
WHERE id = $1 AND organization_id = $2 AND status = $3
`
	res, err := r.execer().ExecContext(ctx, query, id, organizationID, StatusPending, StatusFailed, reason, at)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
