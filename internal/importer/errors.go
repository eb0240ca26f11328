package importer

import "fmt"

// TemplateError reports an input whose header does not match the template.
// No rows are read when it is returned.
type TemplateError struct {
	Columns int
	Err     error
}

func (e *TemplateError) Error() string {
	const msg = "Invalid template. Use official template."
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return fmt.Sprintf("%s (header has %d columns, need at least %d)", msg, e.Columns, minHeaderColumns)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// RowValidationError identifies the first field of a data row that failed
// validation.
type RowValidationError struct {
	Line   int
	Field  string
	Reason string
}

func (e *RowValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Row %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("Row %d: %s %s", e.Line, e.Field, e.Reason)
}

// EmptyImportError reports an input with no valid data rows.
type EmptyImportError struct{}

func (EmptyImportError) Error() string { return "No data in file" }

// ErrEmptyImport is the EmptyImportError value returned by ReadAll.
var ErrEmptyImport error = EmptyImportError{}

const (
	reasonRequired = "required"
	reasonPositive = "must be positive"
)
