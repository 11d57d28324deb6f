package payroll

import (
	"errors"

	payrollerrors "swiftpay/internal/payroll/errors"
	"swiftpay/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollRunNotFound
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return apperror.Wrap(err, apperror.CodePersistenceError, apperror.ErrPersistence.Message, apperror.ErrPersistence.HTTPStatus)
}
