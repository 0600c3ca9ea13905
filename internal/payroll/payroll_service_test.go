package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payops/internal/employee"
	employeeerrors "go-payops/internal/employee/errors"
	"go-payops/internal/expense"
	payrollerrors "go-payops/internal/payroll/errors"
	"go-payops/internal/rate"
	raterrors "go-payops/internal/rate/errors"
	"go-payops/internal/task"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn               func(tx *sql.Tx) Repository
	createWithItemsFn      func(ctx context.Context, record *PayrollRecord, taskIDs, expenseIDs []uuid.UUID) error
	findAllFn              func(ctx context.Context, organizationID string) ([]PayrollRecord, error)
	findByIDFn             func(ctx context.Context, organizationID, id string) (*PayrollRecord, error)
	findApprovedInPeriodFn func(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]PayrollRecord, error)
	approveDraftFn         func(ctx context.Context, organizationID, id, approvedBy string, at time.Time) (bool, error)
	claimApprovedFn        func(ctx context.Context, organizationID, id string, at time.Time) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) CreateWithConsumedItems(ctx context.Context, record *PayrollRecord, taskIDs, expenseIDs []uuid.UUID) error {
	return f.createWithItemsFn(ctx, record, taskIDs, expenseIDs)
}
func (f *fakeRepo) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayrollRecord, error) {
	return f.findAllFn(ctx, organizationID)
}
func (f *fakeRepo) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayrollRecord, error) {
	return f.findByIDFn(ctx, organizationID, id)
}
func (f *fakeRepo) FindApprovedInPeriod(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]PayrollRecord, error) {
	return f.findApprovedInPeriodFn(ctx, organizationID, periodStart, periodEnd)
}
func (f *fakeRepo) ApproveDraft(ctx context.Context, organizationID, id, approvedBy string, at time.Time) (bool, error) {
	return f.approveDraftFn(ctx, organizationID, id, approvedBy, at)
}
func (f *fakeRepo) ClaimApproved(ctx context.Context, organizationID, id string, at time.Time) (bool, error) {
	return f.claimApprovedFn(ctx, organizationID, id, at)
}

type fakeTaskRepo struct {
	findPayableFn func(ctx context.Context, organizationID, projectID string, periodStart, periodEnd time.Time) ([]task.Task, error)
}

func (f *fakeTaskRepo) FindPayable(ctx context.Context, organizationID, projectID string, periodStart, periodEnd time.Time) ([]task.Task, error) {
	return f.findPayableFn(ctx, organizationID, projectID, periodStart, periodEnd)
}

type fakeExpenseRepo struct {
	findPayableFn func(ctx context.Context, organizationID, projectID, employeeID string, periodStart, periodEnd time.Time) ([]expense.Expense, error)
}

func (f *fakeExpenseRepo) FindPayable(ctx context.Context, organizationID, projectID, employeeID string, periodStart, periodEnd time.Time) ([]expense.Expense, error) {
	return f.findPayableFn(ctx, organizationID, projectID, employeeID, periodStart, periodEnd)
}

type fakeRateService struct {
	resolveFn func(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*rate.EmployeeRate, error)
}

func (f *fakeRateService) Add(ctx context.Context, organizationID, actorID string, req rate.AddRateRequest) (rate.RateResponse, error) {
	return rate.RateResponse{}, nil
}
func (f *fakeRateService) Resolve(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*rate.EmployeeRate, error) {
	return f.resolveFn(ctx, organizationID, employeeID, asOf)
}
func (f *fakeRateService) History(ctx context.Context, organizationID, employeeID string) ([]rate.RateResponse, error) {
	return nil, nil
}

type fakeDirectory struct {
	displayNameFn func(ctx context.Context, organizationID, employeeID string) (string, error)
	bankDetailsFn func(ctx context.Context, organizationID, employeeID string) (*employee.BankDetails, error)
	belongsFn     func(ctx context.Context, organizationID, employeeID string) (bool, error)
}

func (f *fakeDirectory) GetDisplayName(ctx context.Context, organizationID, employeeID string) (string, error) {
	return f.displayNameFn(ctx, organizationID, employeeID)
}
func (f *fakeDirectory) GetBankDetails(ctx context.Context, organizationID, employeeID string) (*employee.BankDetails, error) {
	return f.bankDetailsFn(ctx, organizationID, employeeID)
}
func (f *fakeDirectory) BelongsToOrganization(ctx context.Context, organizationID, employeeID string) (bool, error) {
	return f.belongsFn(ctx, organizationID, employeeID)
}

func TestService_Calculate_PayArithmetic(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	orgID := uuid.New().String()
	actorID := uuid.New().String()
	projectID := uuid.New()
	employeeID := uuid.New()

	tasks := &fakeTaskRepo{findPayableFn: func(ctx context.Context, organizationID, projectID string, periodStart, periodEnd time.Time) ([]task.Task, error) {
		return []task.Task{
			{ID: uuid.New(), AssignedTo: employeeID, ElapsedSeconds: 3600},
			{ID: uuid.New(), AssignedTo: employeeID, ElapsedSeconds: 2700},
		}, nil
	}}
	expenses := &fakeExpenseRepo{findPayableFn: func(ctx context.Context, organizationID, projectID, employeeID string, periodStart, periodEnd time.Time) ([]expense.Expense, error) {
		return []expense.Expense{
			{ID: uuid.New(), Amount: decimal.RequireFromString("12.50")},
		}, nil
	}}
	rates := &fakeRateService{resolveFn: func(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*rate.EmployeeRate, error) {
		return &rate.EmployeeRate{HourlyRate: decimal.RequireFromString("20.00")}, nil
	}}
	directory := &fakeDirectory{displayNameFn: func(ctx context.Context, organizationID, employeeID string) (string, error) {
		return "Asha Verma", nil
	}}

	var created []PayrollRecord
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createWithItemsFn = func(ctx context.Context, record *PayrollRecord, taskIDs, expenseIDs []uuid.UUID) error {
		created = append(created, *record)
		assert.Len(t, taskIDs, 2)
		assert.Len(t, expenseIDs, 1)
		return nil
	}

	svc := NewService(db, repo, tasks, expenses, rates, directory)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Calculate(ctx, orgID, actorID, CalculatePayrollRequest{
		ProjectID:   projectID.String(),
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-31",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// 6300 seconds at 20.00/h: 1.75h, 35.00 task pay, 47.50 with the expense
	assert.Len(t, resp.Summaries, 1)
	row := resp.Summaries[0]
	assert.Equal(t, "1.75", row.HoursWorked)
	assert.Equal(t, "35.00", row.TaskPay)
	assert.Equal(t, "12.50", row.ApprovedExpenses)
	assert.Equal(t, "47.50", row.NetPay)
	assert.NotNil(t, row.RecordID)

	assert.Len(t, created, 1)
	assert.Equal(t, StatusDraft, created[0].Status)
	assert.False(t, created[0].Locked)
	assert.True(t, created[0].NetPay.Equal(decimal.RequireFromString("47.50")))
	assert.Equal(t, resp.CreatedRecordIDs, []string{created[0].ID.String()})
}

func TestService_Calculate_SkipsEmployeeWithoutRate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	orgID := uuid.New().String()
	actorID := uuid.New().String()
	paidEmployee := uuid.New()
	unratedEmployee := uuid.New()

	tasks := &fakeTaskRepo{findPayableFn: func(ctx context.Context, organizationID, projectID string, periodStart, periodEnd time.Time) ([]task.Task, error) {
		return []task.Task{
			{ID: uuid.New(), AssignedTo: paidEmployee, ElapsedSeconds: 3600},
			{ID: uuid.New(), AssignedTo: unratedEmployee, ElapsedSeconds: 7200},
		}, nil
	}}
	expenses := &fakeExpenseRepo{findPayableFn: func(ctx context.Context, organizationID, projectID, employeeID string, periodStart, periodEnd time.Time) ([]expense.Expense, error) {
		return nil, nil
	}}
	rates := &fakeRateService{resolveFn: func(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*rate.EmployeeRate, error) {
		if employeeID == unratedEmployee.String() {
			return nil, raterrors.ErrNoRateOnFile
		}
		return &rate.EmployeeRate{HourlyRate: decimal.RequireFromString("15.00")}, nil
	}}
	directory := &fakeDirectory{displayNameFn: func(ctx context.Context, organizationID, employeeID string) (string, error) {
		return "Someone", nil
	}}

	var created []PayrollRecord
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createWithItemsFn = func(ctx context.Context, record *PayrollRecord, taskIDs, expenseIDs []uuid.UUID) error {
		created = append(created, *record)
		return nil
	}

	svc := NewService(db, repo, tasks, expenses, rates, directory)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Calculate(ctx, orgID, actorID, CalculatePayrollRequest{
		ProjectID:   uuid.New().String(),
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-31",
	})
	assert.NoError(t, err)

	// one record only, the unrated employee still shows up in the summary
	assert.Len(t, created, 1)
	assert.Equal(t, paidEmployee, created[0].EmployeeID)
	assert.Len(t, resp.Summaries, 2)

	var skipped *PayrollCalculationSummary
	for i := range resp.Summaries {
		if resp.Summaries[i].EmployeeID == unratedEmployee.String() {
			skipped = &resp.Summaries[i]
		}
	}
	if assert.NotNil(t, skipped) {
		assert.Equal(t, "no rate on file", skipped.Note)
		assert.Equal(t, "2.00", skipped.HoursWorked)
		assert.Equal(t, "0.00", skipped.NetPay)
		assert.Nil(t, skipped.RecordID)
	}
}

func TestService_Calculate_NoTasksCreatesNothing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	tasks := &fakeTaskRepo{findPayableFn: func(ctx context.Context, organizationID, projectID string, periodStart, periodEnd time.Time) ([]task.Task, error) {
		return nil, nil
	}}

	repo := &fakeRepo{}
	svc := NewService(db, repo, tasks, &fakeExpenseRepo{}, &fakeRateService{}, &fakeDirectory{})

	resp, err := svc.Calculate(context.Background(), uuid.New().String(), uuid.New().String(), CalculatePayrollRequest{
		ProjectID:   uuid.New().String(),
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-31",
	})
	assert.NoError(t, err)
	assert.Empty(t, resp.Summaries)
	assert.Empty(t, resp.CreatedRecordIDs)
	// no transaction was opened
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Calculate_InvalidPeriod(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeTaskRepo{}, &fakeExpenseRepo{}, &fakeRateService{}, &fakeDirectory{})

	_, err := svc.Calculate(context.Background(), uuid.New().String(), uuid.New().String(), CalculatePayrollRequest{
		ProjectID:   uuid.New().String(),
		PeriodStart: "2026-08-31",
		PeriodEnd:   "2026-08-01",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
}

func TestService_Calculate_MissingEmployeeIsNoted(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ghost := uuid.New()
	tasks := &fakeTaskRepo{findPayableFn: func(ctx context.Context, organizationID, projectID string, periodStart, periodEnd time.Time) ([]task.Task, error) {
		return []task.Task{{ID: uuid.New(), AssignedTo: ghost, ElapsedSeconds: 1800}}, nil
	}}
	directory := &fakeDirectory{displayNameFn: func(ctx context.Context, organizationID, employeeID string) (string, error) {
		return "", employeeerrors.ErrEmployeeNotFound
	}}

	svc := NewService(db, &fakeRepo{}, tasks, &fakeExpenseRepo{}, &fakeRateService{}, directory)

	resp, err := svc.Calculate(context.Background(), uuid.New().String(), uuid.New().String(), CalculatePayrollRequest{
		ProjectID:   uuid.New().String(),
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-31",
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Summaries, 1)
	assert.Equal(t, "employee record missing", resp.Summaries[0].Note)
	assert.Empty(t, resp.CreatedRecordIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	orgID := uuid.New()
	recordID := uuid.New()
	actorID := uuid.New()

	stored := PayrollRecord{
		ID:             recordID,
		OrganizationID: orgID,
		EmployeeID:     uuid.New(),
		ProjectID:      uuid.New(),
		Status:         StatusDraft,
		GeneratedBy:    actorID,
		GeneratedAt:    time.Now().UTC(),
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, organizationID, id string) (*PayrollRecord, error) {
		r := stored
		return &r, nil
	}
	repo.approveDraftFn = func(ctx context.Context, organizationID, id, approvedBy string, at time.Time) (bool, error) {
		stored.Status = StatusApproved
		by := uuid.MustParse(approvedBy)
		stored.ApprovedBy = &by
		stored.ApprovedAt = &at
		return true, nil
	}

	svc := NewService(db, repo, &fakeTaskRepo{}, &fakeExpenseRepo{}, &fakeRateService{}, &fakeDirectory{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Approve(context.Background(), orgID.String(), actorID.String(), recordID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_RejectsNonDraftStates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	cases := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"approved record", StatusApproved, payrollerrors.ErrNotDraft},
		{"locked record", StatusLocked, payrollerrors.ErrRecordLocked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			repo.findByIDFn = func(ctx context.Context, organizationID, id string) (*PayrollRecord, error) {
				return &PayrollRecord{ID: uuid.New(), Status: tc.status}, nil
			}

			svc := NewService(db, repo, &fakeTaskRepo{}, &fakeExpenseRepo{}, &fakeRateService{}, &fakeDirectory{})

			_, err := svc.Approve(context.Background(), uuid.New().String(), uuid.New().String(), uuid.New().String())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, organizationID, id string) (*PayrollRecord, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeTaskRepo{}, &fakeExpenseRepo{}, &fakeRateService{}, &fakeDirectory{})

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
}

func TestPeriodBounds(t *testing.T) {
	start, end := PeriodBounds(
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.Before(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.After(time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)))
}
