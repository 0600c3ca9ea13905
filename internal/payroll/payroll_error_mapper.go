package payroll

import (
	"errors"
	"strings"

	payrollerrors "go-payops/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" &&
			(pgErr.TableName == "payroll_record_tasks" || pgErr.TableName == "payroll_record_expenses") {
			return payrollerrors.ErrTaskAlreadyProcessed
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") &&
		(strings.Contains(errMsg, "payroll_record_tasks") || strings.Contains(errMsg, "payroll_record_expenses")) {
		return payrollerrors.ErrTaskAlreadyProcessed
	}

	return err
}
