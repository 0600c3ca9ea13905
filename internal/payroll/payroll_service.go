package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payops/internal/employee"
	employeeerrors "go-payops/internal/employee/errors"
	"go-payops/internal/expense"
	payrollerrors "go-payops/internal/payroll/errors"
	"go-payops/internal/rate"
	raterrors "go-payops/internal/rate/errors"
	"go-payops/internal/shared/contextutil"
	"go-payops/internal/task"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "draft"
	StatusApproved = "approved"
	StatusLocked   = "locked"
)

const noteNoRateOnFile = "no rate on file"

var secondsPerHour = decimal.NewFromInt(3600)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, organizationID, actorID string, req CalculatePayrollRequest) (CalculatePayrollResponse, error)
	Approve(ctx context.Context, organizationID, actorID, id string) (PayrollRecordResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]PayrollRecordResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayrollRecordResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	tasks     task.Repository
	expenses  expense.Repository
	rates     rate.Service
	directory employee.Directory
}

func NewService(
	db *sql.DB,
	repo Repository,
	tasks task.Repository,
	expenses expense.Repository,
	rates rate.Service,
	directory employee.Directory,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		tasks:     tasks,
		expenses:  expenses,
		rates:     rates,
		directory: directory,
	}
}

// pendingRecord is a fully computed record waiting for the batch write.
// Skip decisions are made before this stage so the transaction only ever
// contains creations that must all succeed together.
type pendingRecord struct {
	record     PayrollRecord
	taskIDs    []uuid.UUID
	expenseIDs []uuid.UUID
}

func (s *service) Calculate(
	ctx context.Context,
	organizationID, actorID string,
	req CalculatePayrollRequest,
) (CalculatePayrollResponse, error) {
	l := contextutil.GetLogger(ctx, nil).Named("payroll.service")

	orgUUID, actorUUID, projectUUID, periodStart, periodEnd, err := validateCalculateRequest(organizationID, actorID, req)
	if err != nil {
		return CalculatePayrollResponse{}, err
	}

	tasks, err := s.tasks.FindPayable(ctx, organizationID, req.ProjectID, periodStart, periodEnd)
	if err != nil {
		return CalculatePayrollResponse{}, err
	}

	groups, order := groupTasksByEmployee(tasks)

	now := time.Now().UTC()
	summaries := make([]PayrollCalculationSummary, 0, len(order))
	pending := make([]pendingRecord, 0, len(order))

	for _, employeeID := range order {
		group := groups[employeeID]

		name, err := s.directory.GetDisplayName(ctx, organizationID, employeeID.String())
		if err != nil {
			if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
				l.Warn("skipping employee with no profile", zap.String("employee_id", employeeID.String()))
				summaries = append(summaries, zeroSummary(employeeID, "", len(group), "employee record missing"))
				continue
			}
			return CalculatePayrollResponse{}, err
		}

		var totalSeconds int64
		taskIDs := make([]uuid.UUID, 0, len(group))
		for _, tk := range group {
			totalSeconds += tk.ElapsedSeconds
			taskIDs = append(taskIDs, tk.ID)
		}
		hoursWorked := decimal.NewFromInt(totalSeconds).Div(secondsPerHour).Round(2)

		// Rate is resolved at calculation time, not period end.
		rateRecord, err := s.rates.Resolve(ctx, organizationID, employeeID.String(), now)
		if err != nil {
			if errors.Is(err, raterrors.ErrNoRateOnFile) {
				l.Warn("skipping employee with no rate on file", zap.String("employee_id", employeeID.String()))
				summary := zeroSummary(employeeID, name, len(group), noteNoRateOnFile)
				summary.HoursWorked = hoursWorked.StringFixed(2)
				summaries = append(summaries, summary)
				continue
			}
			return CalculatePayrollResponse{}, err
		}

		expenses, err := s.expenses.FindPayable(ctx, organizationID, req.ProjectID, employeeID.String(), periodStart, periodEnd)
		if err != nil {
			return CalculatePayrollResponse{}, err
		}

		expenseTotal := decimal.Zero
		expenseIDs := make([]uuid.UUID, 0, len(expenses))
		for _, exp := range expenses {
			expenseTotal = expenseTotal.Add(exp.Amount)
			expenseIDs = append(expenseIDs, exp.ID)
		}
		expenseTotal = expenseTotal.Round(2)

		taskPay := hoursWorked.Mul(rateRecord.HourlyRate).Round(2)
		deductions := decimal.Zero
		netPay := taskPay.Add(expenseTotal).Sub(deductions).Round(2)

		record := PayrollRecord{
			ID:               uuid.New(),
			OrganizationID:   orgUUID,
			EmployeeID:       employeeID,
			ProjectID:        projectUUID,
			PeriodStart:      periodStart,
			PeriodEnd:        periodEnd,
			HoursWorked:      hoursWorked,
			HourlyRate:       rateRecord.HourlyRate,
			TaskPay:          taskPay,
			ApprovedExpenses: expenseTotal,
			Deductions:       deductions,
			NetPay:           netPay,
			Status:           StatusDraft,
			Locked:           false,
			GeneratedBy:      actorUUID,
			GeneratedAt:      now,
		}

		pending = append(pending, pendingRecord{record: record, taskIDs: taskIDs, expenseIDs: expenseIDs})

		recordID := record.ID.String()
		summaries = append(summaries, PayrollCalculationSummary{
			EmployeeID:       employeeID.String(),
			EmployeeName:     name,
			TaskCount:        len(group),
			HoursWorked:      hoursWorked.StringFixed(2),
			HourlyRate:       rateRecord.HourlyRate.StringFixed(2),
			TaskPay:          taskPay.StringFixed(2),
			ApprovedExpenses: expenseTotal.StringFixed(2),
			NetPay:           netPay.StringFixed(2),
			RecordID:         &recordID,
		})
	}

	createdIDs := make([]string, 0, len(pending))
	if len(pending) > 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return CalculatePayrollResponse{}, err
		}
		defer tx.Rollback()

		qtx := s.repo.WithTx(tx)

		for _, p := range pending {
			record := p.record
			if err := qtx.CreateWithConsumedItems(ctx, &record, p.taskIDs, p.expenseIDs); err != nil {
				return CalculatePayrollResponse{}, mapRepositoryError(err)
			}
			createdIDs = append(createdIDs, record.ID.String())
		}

		if err := tx.Commit(); err != nil {
			return CalculatePayrollResponse{}, err
		}
	}

	l.Info("payroll calculated",
		zap.String("project_id", req.ProjectID),
		zap.Int("employees", len(order)),
		zap.Int("records_created", len(createdIDs)),
	)

	return CalculatePayrollResponse{
		Summaries:        summaries,
		CreatedRecordIDs: createdIDs,
	}, nil
}

func (s *service) Approve(
	ctx context.Context,
	organizationID, actorID, id string,
) (PayrollRecordResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollRecordResponse{}, errors.New("invalid actor id")
	}

	record, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRecordResponse{}, payrollerrors.ErrRecordNotFound
		}
		return PayrollRecordResponse{}, err
	}

	if record.Status == StatusLocked {
		return PayrollRecordResponse{}, payrollerrors.ErrRecordLocked
	}
	if record.Status != StatusDraft {
		return PayrollRecordResponse{}, payrollerrors.ErrNotDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	approved, err := qtx.ApproveDraft(ctx, organizationID, id, actorID, time.Now().UTC())
	if err != nil {
		return PayrollRecordResponse{}, err
	}
	if !approved {
		// someone else moved it out of draft between read and update
		return PayrollRecordResponse{}, payrollerrors.ErrNotDraft
	}

	if err := tx.Commit(); err != nil {
		return PayrollRecordResponse{}, err
	}

	updated, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRecordResponse{}, err
	}

	return MapToResponse(*updated), nil
}

func (s *service) GetAll(
	ctx context.Context,
	organizationID string,
) ([]PayrollRecordResponse, error) {
	records, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(records), nil
}

func (s *service) GetByID(
	ctx context.Context,
	organizationID, id string,
) (PayrollRecordResponse, error) {
	record, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRecordResponse{}, payrollerrors.ErrRecordNotFound
		}
		return PayrollRecordResponse{}, err
	}

	return MapToResponse(*record), nil
}

func validateCalculateRequest(
	organizationID, actorID string,
	req CalculatePayrollRequest,
) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, errors.New("invalid organization id")
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, errors.New("invalid actor id")
	}

	projectUUID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, errors.New("invalid project id")
	}

	startDate, err := ParseDate(req.PeriodStart)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := ParseDate(req.PeriodEnd)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}

	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}

	periodStart, periodEnd := PeriodBounds(startDate, endDate)
	return orgUUID, actorUUID, projectUUID, periodStart, periodEnd, nil
}

// PeriodBounds expands calendar dates into the inclusive instant range
// [start of first day, end of last day].
func PeriodBounds(startDate, endDate time.Time) (time.Time, time.Time) {
	periodStart := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, 1).Add(-time.Nanosecond)
	return periodStart, periodEnd
}

func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

func groupTasksByEmployee(tasks []task.Task) (map[uuid.UUID][]task.Task, []uuid.UUID) {
	groups := make(map[uuid.UUID][]task.Task)
	order := make([]uuid.UUID, 0)

	for _, tk := range tasks {
		if _, seen := groups[tk.AssignedTo]; !seen {
			order = append(order, tk.AssignedTo)
		}
		groups[tk.AssignedTo] = append(groups[tk.AssignedTo], tk)
	}

	return groups, order
}

func zeroSummary(employeeID uuid.UUID, name string, taskCount int, note string) PayrollCalculationSummary {
	zero := decimal.Zero.StringFixed(2)
	return PayrollCalculationSummary{
		EmployeeID:       employeeID.String(),
		EmployeeName:     name,
		TaskCount:        taskCount,
		HoursWorked:      zero,
		HourlyRate:       zero,
		TaskPay:          zero,
		ApprovedExpenses: zero,
		NetPay:           zero,
		Note:             note,
	}
}

func MapToResponse(record PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:               record.ID.String(),
		OrganizationID:   record.OrganizationID.String(),
		EmployeeID:       record.EmployeeID.String(),
		ProjectID:        record.ProjectID.String(),
		PeriodStart:      record.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        record.PeriodEnd.Format("2006-01-02"),
		HoursWorked:      record.HoursWorked.StringFixed(2),
		HourlyRate:       record.HourlyRate.StringFixed(2),
		TaskPay:          record.TaskPay.StringFixed(2),
		ApprovedExpenses: record.ApprovedExpenses.StringFixed(2),
		Deductions:       record.Deductions.StringFixed(2),
		NetPay:           record.NetPay.StringFixed(2),
		Status:           record.Status,
		Locked:           record.Locked,
		GeneratedBy:      record.GeneratedBy.String(),
		GeneratedAt:      record.GeneratedAt.Format(time.RFC3339),
	}

	if record.ApprovedBy != nil {
		v := record.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if record.ApprovedAt != nil {
		v := record.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}

	return resp
}

func mapToListResponse(records []PayrollRecord) []PayrollRecordResponse {
	resp := make([]PayrollRecordResponse, len(records))
	for i, record := range records {
		resp[i] = MapToResponse(record)
	}
	return resp
}
