package persistence

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/shared"
)

// uniqueViolation is the postgres error code for unique constraint violations
const uniqueViolation = "23505"

// translateError maps driver-level errors onto domain errors so callers
// never depend on the database in use.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return shared.ErrAlreadyExists
	}
	// sqlite, used in tests, reports constraint violations by message
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return shared.ErrAlreadyExists
	}
	return err
}
