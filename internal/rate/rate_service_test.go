package rate

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payops/internal/employee"
	raterrors "go-payops/internal/rate/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn    func(tx *sql.Tx) Repository
	createFn    func(ctx context.Context, rate *EmployeeRate) error
	resolveAtFn func(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*EmployeeRate, error)
	findAllFn   func(ctx context.Context, organizationID, employeeID string) ([]EmployeeRate, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, rate *EmployeeRate) error {
	return f.createFn(ctx, rate)
}
func (f *fakeRepo) ResolveAt(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*EmployeeRate, error) {
	return f.resolveAtFn(ctx, organizationID, employeeID, asOf)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, organizationID, employeeID string) ([]EmployeeRate, error) {
	return f.findAllFn(ctx, organizationID, employeeID)
}

type fakeDirectory struct {
	belongsFn func(ctx context.Context, organizationID, employeeID string) (bool, error)
}

func (f *fakeDirectory) GetDisplayName(ctx context.Context, organizationID, employeeID string) (string, error) {
	return "", nil
}
func (f *fakeDirectory) GetBankDetails(ctx context.Context, organizationID, employeeID string) (*employee.BankDetails, error) {
	return nil, nil
}
func (f *fakeDirectory) BelongsToOrganization(ctx context.Context, organizationID, employeeID string) (bool, error) {
	return f.belongsFn(ctx, organizationID, employeeID)
}

func TestService_Add(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved EmployeeRate
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, rate *EmployeeRate) error { saved = *rate; return nil }

	directory := &fakeDirectory{belongsFn: func(ctx context.Context, organizationID, employeeID string) (bool, error) {
		return true, nil
	}}

	svc := NewService(db, repo, directory)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Add(context.Background(), uuid.New().String(), uuid.New().String(), AddRateRequest{
		EmployeeID:    uuid.New().String(),
		HourlyRate:    decimal.RequireFromString("20.005"),
		EffectiveFrom: "2025-01-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, "20.01", resp.HourlyRate)
	assert.True(t, saved.HourlyRate.Equal(decimal.RequireFromString("20.01")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Add_RejectsNonPositiveRate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeDirectory{})

	for _, v := range []string{"0", "-5"} {
		_, err := svc.Add(context.Background(), uuid.New().String(), uuid.New().String(), AddRateRequest{
			EmployeeID:    uuid.New().String(),
			HourlyRate:    decimal.RequireFromString(v),
			EffectiveFrom: "2025-01-01",
		})
		assert.ErrorIs(t, err, raterrors.ErrNonPositiveRate)
	}
}

func TestService_Add_RejectsForeignEmployee(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	directory := &fakeDirectory{belongsFn: func(ctx context.Context, organizationID, employeeID string) (bool, error) {
		return false, nil
	}}

	svc := NewService(db, &fakeRepo{}, directory)

	_, err := svc.Add(context.Background(), uuid.New().String(), uuid.New().String(), AddRateRequest{
		EmployeeID:    uuid.New().String(),
		HourlyRate:    decimal.RequireFromString("12"),
		EffectiveFrom: "2025-01-01",
	})
	assert.ErrorIs(t, err, raterrors.ErrEmployeeNotInOrganization)
}

// The repository query picks the rate with the latest effective date at or
// before the lookup instant; this exercises the service-side contract with
// a fake that mimics that ordering over a two-entry history.
func TestService_Resolve_EffectiveDatedHistory(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	jan := EmployeeRate{
		ID:            uuid.New(),
		HourlyRate:    decimal.RequireFromString("10.00"),
		EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	jun := EmployeeRate{
		ID:            uuid.New(),
		HourlyRate:    decimal.RequireFromString("12.00"),
		EffectiveFrom: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	repo := &fakeRepo{}
	repo.resolveAtFn = func(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*EmployeeRate, error) {
		var best *EmployeeRate
		for _, r := range []EmployeeRate{jan, jun} {
			r := r
			if !r.EffectiveFrom.After(asOf) && (best == nil || r.EffectiveFrom.After(best.EffectiveFrom)) {
				best = &r
			}
		}
		return best, nil
	}

	svc := NewService(db, repo, &fakeDirectory{})
	orgID := uuid.New().String()
	employeeID := uuid.New().String()

	cases := []struct {
		asOf time.Time
		want string
	}{
		{time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "10.00"},
		{time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "12.00"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "12.00"},
	}
	for _, tc := range cases {
		got, err := svc.Resolve(context.Background(), orgID, employeeID, tc.asOf)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got.HourlyRate.StringFixed(2))
	}

	_, err := svc.Resolve(context.Background(), orgID, employeeID, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, raterrors.ErrNoRateOnFile)
}

func TestService_History(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context, organizationID, employeeID string) ([]EmployeeRate, error) {
		return []EmployeeRate{
			{ID: uuid.New(), HourlyRate: decimal.RequireFromString("12.00")},
			{ID: uuid.New(), HourlyRate: decimal.RequireFromString("10.00")},
		}, nil
	}

	svc := NewService(db, repo, &fakeDirectory{})

	resp, err := svc.History(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "12.00", resp[0].HourlyRate)
}
