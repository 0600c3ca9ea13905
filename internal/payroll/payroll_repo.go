package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payops/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateWithConsumedItems(ctx context.Context, record *PayrollRecord, taskIDs, expenseIDs []uuid.UUID) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]PayrollRecord, error)
	FindByIDAndOrganization(ctx context.Context, organizationID string, id string) (*PayrollRecord, error)
	FindApprovedInPeriod(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]PayrollRecord, error)
	ApproveDraft(ctx context.Context, organizationID, id, approvedBy string, at time.Time) (bool, error)
	ClaimApproved(ctx context.Context, organizationID, id string, at time.Time) (bool, error)
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

// CreateWithConsumedItems inserts the record plus one consumed-item row per
// task and expense. The join-table primary keys reject any id a previous
// record already consumed, so a race between two calculations fails the
// whole transaction instead of paying twice.
func (r *repository) CreateWithConsumedItems(
	ctx context.Context,
	record *PayrollRecord,
	taskIDs, expenseIDs []uuid.UUID,
) error {
	exec := r.execer()

	query := `
        INSERT INTO payroll_records (
            id, organization_id, employee_id, project_id,
            period_start, period_end,
            hours_worked, hourly_rate, task_pay, approved_expenses, deductions, net_pay,
            status, locked, generated_by, generated_at, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
    `
	_, err := exec.ExecContext(
		ctx, query,
		record.ID, record.OrganizationID, record.EmployeeID, record.ProjectID,
		record.PeriodStart, record.PeriodEnd,
		record.HoursWorked, record.HourlyRate, record.TaskPay,
		record.ApprovedExpenses, record.Deductions, record.NetPay,
		record.Status, record.Locked, record.GeneratedBy, record.GeneratedAt,
		record.GeneratedAt, record.GeneratedAt,
	)
	if err != nil {
		return err
	}

	for _, taskID := range taskIDs {
		_, err := exec.ExecContext(
			ctx,
			`INSERT INTO payroll_record_tasks (task_id, payroll_record_id) VALUES ($1, $2)`,
			taskID, record.ID,
		)
		if err != nil {
			return err
		}
	}

	for _, expenseID := range expenseIDs {
		_, err := exec.ExecContext(
			ctx,
			`INSERT INTO payroll_record_expenses (expense_id, payroll_record_id) VALUES ($1, $2)`,
			expenseID, record.ID,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayrollRecord, error) {
	var records []PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("period_start DESC").
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID string, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindApprovedInPeriod(
	ctx context.Context,
	organizationID string,
	periodStart, periodEnd time.Time,
) ([]PayrollRecord, error) {
	var records []PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("status = ?", StatusApproved).
		Where("locked = false").
		Where("period_start >= ? AND period_end <= ?", periodStart, periodEnd).
		Order("employee_id ASC").
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) ApproveDraft(
	ctx context.Context,
	organizationID, id, approvedBy string,
	at time.Time,
) (bool, error) {
	query := `
UPDATE payroll_records
SET status = $4, approved_by = $5, approved_at = $6, updated_at = $6
WHERE id = $1 AND organization_id = $2 AND status = $3
`
	res, err := r.execer().ExecContext(ctx, query, id, organizationID, StatusDraft, StatusApproved, approvedBy, at)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ClaimApproved is the conditional lock a payroll run takes per record.
// The status guard makes it a compare-and-swap: when two runs race over the
// same record, exactly one sees an affected row.
func (r *repository) ClaimApproved(
	ctx context.Context,
	organizationID, id string,
	at time.Time,
) (bool, error) {
	query := `
UPDATE payroll_records
SET status = $4, locked = true, updated_at = $5
WHERE id = $1 AND organization_id = $2 AND status = $3 AND locked = false
`
	res, err := r.execer().ExecContext(ctx, query, id, organizationID, StatusApproved, StatusLocked, at)
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
