package employee

import (
	"context"
	"errors"

	employeeerrors "go-payops/internal/employee/errors"
	"go-payops/internal/tenant"

	"gorm.io/gorm"
)

// Directory is the read-only view of employee profiles the payroll
// subsystem consumes. Profile management itself lives elsewhere.
//
//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Directory interface {
	GetDisplayName(ctx context.Context, organizationID, employeeID string) (string, error)
	GetBankDetails(ctx context.Context, organizationID, employeeID string) (*BankDetails, error)
	BelongsToOrganization(ctx context.Context, organizationID, employeeID string) (bool, error)
}

type directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &directory{db: db}
}

func (d *directory) GetDisplayName(ctx context.Context, organizationID, employeeID string) (string, error) {
	var emp Employee
	err := d.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Select("id", "full_name", "email").
		First(&emp, "id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", employeeerrors.ErrEmployeeNotFound
	}
	if err != nil {
		return "", err
	}

	if emp.FullName != "" {
		return emp.FullName, nil
	}
	return emp.Email, nil
}

func (d *directory) GetBankDetails(ctx context.Context, organizationID, employeeID string) (*BankDetails, error) {
	var emp Employee
	err := d.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&emp, "id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}

	if emp.BankAccountNumber == "" || emp.BankIfscOrSwift == "" {
		return nil, employeeerrors.ErrBankDetailsMissing
	}

	return &BankDetails{
		AccountNumber:     emp.BankAccountNumber,
		IfscOrSwift:       emp.BankIfscOrSwift,
		AccountHolderName: emp.AccountHolderName,
		UpiID:             emp.UpiID,
	}, nil
}

func (d *directory) BelongsToOrganization(ctx context.Context, organizationID, employeeID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
