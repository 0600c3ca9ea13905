package payrollrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payops/internal/employee"
	employeeerrors "go-payops/internal/employee/errors"
	"go-payops/internal/events"
	"go-payops/internal/messaging/kafka"
	"go-payops/internal/notification"
	"go-payops/internal/payout"
	"go-payops/internal/payroll"
	runerrors "go-payops/internal/payrollrun/errors"
	"go-payops/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	skipReasonMissingBankDetails = "missing bank details"
	skipReasonClaimedByOtherRun  = "claimed by another run"
)

//go:generate mockgen -source=run_service.go -destination=mock/run_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context, organizationID, actorID string, req RunPayrollRequest) (RunPayrollResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayrollRunResponse, error)
	BankExport(ctx context.Context, organizationID, id string) (string, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	records   payroll.Repository
	payouts   payout.Service
	payoutsRO payout.Repository
	directory employee.Directory
	notifier  notification.Notifier
	outbox    kafka.OutboxRepository
	template  string
}

func NewService(
	db *sql.DB,
	repo Repository,
	records payroll.Repository,
	payouts payout.Service,
	payoutsRO payout.Repository,
	directory employee.Directory,
	notifier notification.Notifier,
	outbox kafka.OutboxRepository,
	template string,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		records:   records,
		payouts:   payouts,
		payoutsRO: payoutsRO,
		directory: directory,
		notifier:  notifier,
		outbox:    outbox,
		template:  template,
	}
}

// candidate pairs an approved record with the bank details needed to pay it.
type candidate struct {
	record payroll.PayrollRecord
	bank   employee.BankDetails
}

func (s *service) Run(
	ctx context.Context,
	organizationID, actorID string,
	req RunPayrollRequest,
) (RunPayrollResponse, error) {
	l := contextutil.GetLogger(ctx, nil).Named("payrollrun.service")

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return RunPayrollResponse{}, errors.New("invalid organization id")
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunPayrollResponse{}, errors.New("invalid actor id")
	}

	startDate, err := payroll.ParseDate(req.PeriodStart)
	if err != nil {
		return RunPayrollResponse{}, err
	}
	endDate, err := payroll.ParseDate(req.PeriodEnd)
	if err != nil {
		return RunPayrollResponse{}, err
	}
	periodStart, periodEnd := payroll.PeriodBounds(startDate, endDate)

	method := req.Method
	if method == "" {
		method = payout.MethodAuto
	}

	// Records come back sorted by employee id so the payout batch and the
	// bank export are reproducible for the same inputs.
	records, err := s.records.FindApprovedInPeriod(ctx, organizationID, periodStart, periodEnd)
	if err != nil {
		return RunPayrollResponse{}, err
	}

	skipped := make([]SkippedEmployee, 0)
	candidates := make([]candidate, 0, len(records))
	for _, record := range records {
		bank, err := s.directory.GetBankDetails(ctx, organizationID, record.EmployeeID.String())
		if err != nil {
			if errors.Is(err, employeeerrors.ErrBankDetailsMissing) || errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
				skipped = append(skipped, SkippedEmployee{
					EmployeeID:      record.EmployeeID.String(),
					PayrollRecordID: record.ID.String(),
					Reason:          skipReasonMissingBankDetails,
				})
				continue
			}
			return RunPayrollResponse{}, err
		}
		candidates = append(candidates, candidate{record: record, bank: *bank})
	}

	now := time.Now().UTC()
	run := PayrollRun{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		TotalAmount:    decimal.Zero,
		Status:         StatusPending,
		Method:         method,
		CreatedBy:      actorUUID,
		CreatedAt:      now,
	}
	if method == payout.MethodManual {
		run.Status = StatusPaid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunPayrollResponse{}, err
	}
	defer tx.Rollback()

	qRecords := s.records.WithTx(tx)
	qNotifier := s.notifier.WithTx(tx)

	remarks := "Payroll " + periodStart.Format("2006-01-02")
	total := decimal.Zero
	createdPayouts := make([]payout.PayoutRecord, 0, len(candidates))
	exportEntries := make([]payout.BankExportEntry, 0, len(candidates))

	for _, c := range candidates {
		claimed, err := qRecords.ClaimApproved(ctx, organizationID, c.record.ID.String(), now)
		if err != nil {
			return RunPayrollResponse{}, err
		}
		if !claimed {
			// a concurrent run already locked this record
			skipped = append(skipped, SkippedEmployee{
				EmployeeID:      c.record.EmployeeID.String(),
				PayrollRecordID: c.record.ID.String(),
				Reason:          skipReasonClaimedByOtherRun,
			})
			continue
		}

		p, err := s.payouts.Create(ctx, tx, run.ID, c.record, c.bank, method, now)
		if err != nil {
			return RunPayrollResponse{}, err
		}
		createdPayouts = append(createdPayouts, p)
		total = total.Add(c.record.NetPay)

		exportEntries = append(exportEntries, payout.BankExportEntry{
			AccountNumber: c.bank.AccountNumber,
			IFSC:          c.bank.IfscOrSwift,
			Amount:        c.record.NetPay,
			Remarks:       remarks,
		})

		message := notification.RenderPayoutMessage(s.template, periodStart, c.record.NetPay)
		if err := qNotifier.Notify(ctx, organizationID, c.record.EmployeeID.String(), message); err != nil {
			return RunPayrollResponse{}, err
		}
	}

	run.TotalAmount = total.Round(2)

	if err := s.repo.WithTx(tx).Create(ctx, &run); err != nil {
		return RunPayrollResponse{}, err
	}

	for _, sk := range skipped {
		if sk.Reason != skipReasonMissingBankDetails {
			continue
		}
		message := "⚠️ We could not pay out your salary because your bank details are missing. Please update your profile."
		if err := qNotifier.Notify(ctx, organizationID, sk.EmployeeID, message); err != nil {
			return RunPayrollResponse{}, err
		}
	}

	summary := fmt.Sprintf(
		"Payroll run for %s completed: %d payouts totalling ₹%s, %d skipped.",
		periodStart.Month().String(), len(createdPayouts), run.TotalAmount.StringFixed(2), len(skipped),
	)
	if err := qNotifier.Notify(ctx, organizationID, events.RecipientRoleOrgAdmins, summary); err != nil {
		return RunPayrollResponse{}, err
	}

	if err := s.queueRunCompletedEvent(ctx, tx, run, len(createdPayouts), len(skipped), actorID); err != nil {
		return RunPayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunPayrollResponse{}, err
	}

	l.Info("payroll run completed",
		zap.String("run_id", run.ID.String()),
		zap.String("total_amount", run.TotalAmount.StringFixed(2)),
		zap.Int("payouts", len(createdPayouts)),
		zap.Int("skipped", len(skipped)),
	)

	return RunPayrollResponse{
		Run:        mapToResponse(run),
		Payouts:    payout.MapToListResponse(createdPayouts),
		BankExport: payout.GenerateBankExport(exportEntries),
		Skipped:    skipped,
	}, nil
}

func (s *service) queueRunCompletedEvent(
	ctx context.Context,
	tx *sql.Tx,
	run PayrollRun,
	payoutCount, skippedCount int,
	actorID string,
) error {
	event := events.PayrollRunCompletedEvent{
		EventType:      "payroll.run.completed",
		RunID:          run.ID.String(),
		OrganizationID: run.OrganizationID.String(),
		PeriodStart:    run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      run.PeriodEnd.Format("2006-01-02"),
		TotalAmount:    run.TotalAmount.StringFixed(2),
		PayoutCount:    payoutCount,
		SkippedCount:   skippedCount,
		Method:         run.Method,
		TriggeredBy:    actorID,
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_run",
		AggregateID:   run.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollRunCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]PayrollRunResponse, error) {
	runs, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapToResponse(run)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (PayrollRunResponse, error) {
	run, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRunResponse{}, runerrors.ErrRunNotFound
		}
		return PayrollRunResponse{}, err
	}

	return mapToResponse(*run), nil
}

// BankExport rebuilds the upload file for a past run from the bank details
// stored on its payouts, so the file matches the batch as it was disbursed
// even if an employee has since changed or removed their account.
func (s *service) BankExport(ctx context.Context, organizationID, id string) (string, error) {
	run, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", runerrors.ErrRunNotFound
		}
		return "", err
	}

	payouts, err := s.payoutsRO.FindByRun(ctx, organizationID, id)
	if err != nil {
		return "", err
	}

	remarks := "Payroll " + run.PeriodStart.Format("2006-01-02")
	entries := make([]payout.BankExportEntry, 0, len(payouts))
	for _, p := range payouts {
		entries = append(entries, payout.BankExportEntry{
			AccountNumber: p.BankAccountNumber,
			IFSC:          p.BankIfsc,
			Amount:        p.Amount,
			Remarks:       remarks,
		})
	}

	return payout.GenerateBankExport(entries), nil
}

func mapToResponse(run PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		ID:             run.ID.String(),
		OrganizationID: run.OrganizationID.String(),
		PeriodStart:    run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      run.PeriodEnd.Format("2006-01-02"),
		TotalAmount:    run.TotalAmount.StringFixed(2),
		Status:         run.Status,
		Method:         run.Method,
		CreatedBy:      run.CreatedBy.String(),
		CreatedAt:      run.CreatedAt.Format(time.RFC3339),
	}
}
