package rate

import (
	"errors"
	"strings"

	raterrors "go-payops/internal/rate/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_rate_employee_effective" {
			return raterrors.ErrRateEffectiveDateAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_rate_employee_effective") {
		return raterrors.ErrRateEffectiveDateAlreadyExists
	}

	return err
}
