package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// structuralCodes are the Postgres SQLSTATEs that mean the schema does not
// match the code
var structuralCodes = map[string]string{
	"42703": "undefined column",
	"42P01": "undefined table",
	"42804": "datatype mismatch",
	"42P18": "indeterminate datatype",
}

var sqliteStructuralMessages = []string{
	"no such column",
	"has no column named",
	"no such table",
}

// StructuralError is a persistence failure caused by the schema itself.
// Retrying or skipping the item cannot fix it.
type StructuralError struct {
	Code   string
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("structural database error (%s %s): %v", e.Code, e.Reason, e.Err)
	}
	return fmt.Sprintf("structural database error (%s): %v", e.Reason, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// IsStructuralError reports whether err is, or wraps, a StructuralError
func IsStructuralError(err error) bool {
	var structural *StructuralError
	return errors.As(err, &structural)
}

// classify maps driver errors onto the repository error taxonomy
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, ErrNotFound) || IsStructuralError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if reason, ok := structuralCodes[pgErr.Code]; ok {
			return &StructuralError{Code: pgErr.Code, Reason: reason, Err: err}
		}
		return err
	}

	msg := err.Error()
	for _, marker := range sqliteStructuralMessages {
		if strings.Contains(msg, marker) {
			return &StructuralError{Reason: marker, Err: err}
		}
	}
	return err
}
