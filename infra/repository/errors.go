// Package repository implements the persistence contracts on GORM.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/skarim/finledger/pkg/domain"
)

// MapGormErrorToDomain converts GORM errors to domain errors so database
// concerns stay inside the infrastructure layer. The unique-constraint
// mapping is what turns a write-time race on (raw_date, description) into
// the user-facing duplicate error.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrDuplicateTransaction
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}
	return err
}
