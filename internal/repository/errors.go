package repository

import (
	"errors"
	"fmt"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Common repository errors that can be checked with errors.Is()
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = crud.ErrNotFound

	// ErrDuplicate is returned when attempting to create an entity that already exists
	ErrDuplicate = crud.ErrDuplicate

	// ErrInvalidEntity is returned when an entity references a missing parent
	ErrInvalidEntity = crud.ErrInvalidEntity

	// ErrOperationNotSupported is returned when FindBy is asked for a field it cannot query
	ErrOperationNotSupported = errors.New("operation not supported")
)

// translate maps SQLite constraint failures onto the repository sentinels,
// keeping the driver error in the chain.
func translate(op string, err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s: %w: %w", op, ErrInvalidEntity, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
