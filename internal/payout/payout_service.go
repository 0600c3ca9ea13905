package payout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-payops/internal/employee"
	"go-payops/internal/notification"
	payouterrors "go-payops/internal/payout/errors"
	"go-payops/internal/payroll"
	"go-payops/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payout_service.go -destination=mock/payout_service_mock.go -package=mock
type Service interface {
	// Create inserts the payout for a just-locked payroll record. It joins
	// the caller's transaction so the lock and the payout commit together.
	// The bank details are stored on the payout as paid.
	Create(ctx context.Context, tx *sql.Tx, runID uuid.UUID, record payroll.PayrollRecord, bank employee.BankDetails, method string, at time.Time) (PayoutRecord, error)
	MarkSuccess(ctx context.Context, organizationID, id string) (PayoutRecordResponse, error)
	MarkFailed(ctx context.Context, organizationID, id, reason string) (PayoutRecordResponse, error)
	GetAll(ctx context.Context, organizationID, status string) ([]PayoutRecordResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayoutRecordResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Notifier
}

func NewService(
	db *sql.DB,
	repo Repository,
	notifier notification.Notifier,
) Service {
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
	}
}

func (s *service) Create(
	ctx context.Context,
	tx *sql.Tx,
	runID uuid.UUID,
	record payroll.PayrollRecord,
	bank employee.BankDetails,
	method string,
	at time.Time,
) (PayoutRecord, error) {
	p := PayoutRecord{
		ID:                uuid.New(),
		OrganizationID:    record.OrganizationID,
		PayrollRecordID:   record.ID,
		PayrollRunID:      runID,
		EmployeeID:        record.EmployeeID,
		Amount:            record.NetPay,
		Method:            method,
		Status:            StatusPending,
		BankAccountNumber: bank.AccountNumber,
		BankIfsc:          bank.IfscOrSwift,
		CreatedAt:         at,
	}

	// manual means money moved outside the system, record it as settled
	if method == MethodManual {
		p.Status = StatusSuccess
		processedAt := at
		p.ProcessedAt = &processedAt
	}

	if err := s.repo.WithTx(tx).Create(ctx, &p); err != nil {
		return PayoutRecord{}, err
	}

	return p, nil
}

func (s *service) MarkSuccess(
	ctx context.Context,
	organizationID, id string,
) (PayoutRecordResponse, error) {
	l := contextutil.GetLogger(ctx, nil).Named("payout.service")

	p, err := s.findPending(ctx, organizationID, id)
	if err != nil {
		return PayoutRecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayoutRecordResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	settled, err := s.repo.WithTx(tx).SettleSuccess(ctx, organizationID, id, now)
	if err != nil {
		return PayoutRecordResponse{}, err
	}
	if !settled {
		return PayoutRecordResponse{}, payouterrors.ErrPayoutNotPending
	}

	message := fmt.Sprintf("✅ Payout of ₹%s has been disbursed.", p.Amount.StringFixed(2))
	if suffix := MaskedSuffix(p.BankAccountNumber); suffix != "" {
		message = fmt.Sprintf("✅ Payout of ₹%s sent to account ending %s.", p.Amount.StringFixed(2), suffix)
	}
	if err := s.notifier.WithTx(tx).Notify(ctx, organizationID, p.EmployeeID.String(), message); err != nil {
		return PayoutRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayoutRecordResponse{}, err
	}

	l.Info("payout settled",
		zap.String("payout_id", id),
		zap.String("employee_id", p.EmployeeID.String()),
	)

	p.Status = StatusSuccess
	p.ProcessedAt = &now
	return MapToResponse(*p), nil
}

func (s *service) MarkFailed(
	ctx context.Context,
	organizationID, id, reason string,
) (PayoutRecordResponse, error) {
	l := contextutil.GetLogger(ctx, nil).Named("payout.service")

	p, err := s.findPending(ctx, organizationID, id)
	if err != nil {
		return PayoutRecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayoutRecordResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	settled, err := s.repo.WithTx(tx).SettleFailed(ctx, organizationID, id, reason, now)
	if err != nil {
		return PayoutRecordResponse{}, err
	}
	if !settled {
		return PayoutRecordResponse{}, payouterrors.ErrPayoutNotPending
	}

	message := fmt.Sprintf("⚠️ Your payout of ₹%s could not be processed. Payroll will retry it manually.", p.Amount.StringFixed(2))
	if err := s.notifier.WithTx(tx).Notify(ctx, organizationID, p.EmployeeID.String(), message); err != nil {
		return PayoutRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayoutRecordResponse{}, err
	}

	l.Warn("payout failed",
		zap.String("payout_id", id),
		zap.String("reason", reason),
	)

	p.Status = StatusFailed
	p.FailureReason = &reason
	p.ProcessedAt = &now
	return MapToResponse(*p), nil
}

func (s *service) GetAll(
	ctx context.Context,
	organizationID, status string,
) ([]PayoutRecordResponse, error) {
	payouts, err := s.repo.FindAllByOrganization(ctx, organizationID, status)
	if err != nil {
		return nil, err
	}

	return MapToListResponse(payouts), nil
}

func (s *service) GetByID(
	ctx context.Context,
	organizationID, id string,
) (PayoutRecordResponse, error) {
	p, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayoutRecordResponse{}, payouterrors.ErrPayoutNotFound
		}
		return PayoutRecordResponse{}, err
	}

	return MapToResponse(*p), nil
}

func (s *service) findPending(ctx context.Context, organizationID, id string) (*PayoutRecord, error) {
	p, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payouterrors.ErrPayoutNotFound
		}
		return nil, err
	}

	if p.Status != StatusPending {
		return nil, payouterrors.ErrPayoutNotPending
	}

	return p, nil
}

// MaskedSuffix returns the last four characters of an account number,
// the only part safe to surface in a notification.
func MaskedSuffix(accountNumber string) string {
	if len(accountNumber) <= 4 {
		return accountNumber
	}
	return accountNumber[len(accountNumber)-4:]
}

func MapToResponse(p PayoutRecord) PayoutRecordResponse {
	resp := PayoutRecordResponse{
		ID:              p.ID.String(),
		OrganizationID:  p.OrganizationID.String(),
		PayrollRecordID: p.PayrollRecordID.String(),
		PayrollRunID:    p.PayrollRunID.String(),
		EmployeeID:      p.EmployeeID.String(),
		Amount:          p.Amount.StringFixed(2),
		Method:          p.Method,
		Status:          p.Status,
		FailureReason:   p.FailureReason,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}

	if p.ProcessedAt != nil {
		v := p.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}

	return resp
}

func MapToListResponse(payouts []PayoutRecord) []PayoutRecordResponse {
	resp := make([]PayoutRecordResponse, len(payouts))
	for i, p := range payouts {
		resp[i] = MapToResponse(p)
	}
	return resp
}
