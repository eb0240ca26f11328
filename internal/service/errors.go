package service

import (
	"errors"

	"github.com/alexanderramin/throughput/internal/importer"
)

// PersistenceError reports a failed import transaction. Nothing from the
// import was committed.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "Database error: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Error kinds reported by ErrorKind.
const (
	KindTemplate    = "template"
	KindValidation  = "validation"
	KindEmpty       = "empty"
	KindPersistence = "persistence"
	KindOther       = "other"
)

// ErrorKind classifies an import error for metrics and status mapping.
// It returns "" for a nil error.
func ErrorKind(err error) string {
	var (
		templateErr    *importer.TemplateError
		validationErr  *importer.RowValidationError
		persistenceErr *PersistenceError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &templateErr):
		return KindTemplate
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.Is(err, importer.ErrEmptyImport):
		return KindEmpty
	case errors.As(err, &persistenceErr):
		return KindPersistence
	default:
		return KindOther
	}
}

// IsInputError reports whether err was caused by the uploaded data rather
// than the system.
func IsInputError(err error) bool {
	switch ErrorKind(err) {
	case KindTemplate, KindValidation, KindEmpty:
		return true
	}
	return false
}
