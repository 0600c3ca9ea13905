package rate

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payops/internal/employee"
	raterrors "go-payops/internal/rate/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -source=rate_service.go -destination=mock/rate_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, organizationID, actorID string, req AddRateRequest) (RateResponse, error)
	Resolve(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*EmployeeRate, error)
	History(ctx context.Context, organizationID, employeeID string) ([]RateResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory employee.Directory
}

func NewService(db *sql.DB, repo Repository, directory employee.Directory) Service {
	return &service{db: db, repo: repo, directory: directory}
}

func (s *service) Add(
	ctx context.Context,
	organizationID, actorID string,
	req AddRateRequest,
) (RateResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return RateResponse{}, errors.New("invalid organization id")
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RateResponse{}, errors.New("invalid actor id")
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RateResponse{}, errors.New("invalid employee id")
	}

	if !req.HourlyRate.IsPositive() {
		return RateResponse{}, raterrors.ErrNonPositiveRate
	}

	effectiveFrom, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return RateResponse{}, err
	}

	belongs, err := s.directory.BelongsToOrganization(ctx, organizationID, req.EmployeeID)
	if err != nil {
		return RateResponse{}, err
	}
	if !belongs {
		return RateResponse{}, raterrors.ErrEmployeeNotInOrganization
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &EmployeeRate{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		EmployeeID:     employeeUUID,
		HourlyRate:     req.HourlyRate.Round(2),
		EffectiveFrom:  effectiveFrom,
		CreatedAt:      time.Now().UTC(),
		CreatedBy:      actorUUID,
	}

	if err := qtx.Create(ctx, record); err != nil {
		return RateResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return RateResponse{}, err
	}

	return mapToResponse(*record), nil
}

// Resolve returns the rate in effect at asOf: the record with the latest
// effective_from at or before asOf, ties broken by latest created_at.
func (s *service) Resolve(
	ctx context.Context,
	organizationID, employeeID string,
	asOf time.Time,
) (*EmployeeRate, error) {
	record, err := s.repo.ResolveAt(ctx, organizationID, employeeID, asOf)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, raterrors.ErrNoRateOnFile
	}
	return record, nil
}

func (s *service) History(
	ctx context.Context,
	organizationID, employeeID string,
) ([]RateResponse, error) {
	records, err := s.repo.FindAllByEmployee(ctx, organizationID, employeeID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(records), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

func mapToResponse(record EmployeeRate) RateResponse {
	return RateResponse{
		ID:            record.ID.String(),
		EmployeeID:    record.EmployeeID.String(),
		HourlyRate:    record.HourlyRate.StringFixed(2),
		EffectiveFrom: record.EffectiveFrom.Format("2006-01-02"),
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
		CreatedBy:     record.CreatedBy.String(),
	}
}

func mapToListResponse(records []EmployeeRate) []RateResponse {
	resp := make([]RateResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp
}
