package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/throughput/internal/service"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitValidation  = 2
	ExitUsage       = 3
	ExitPersistence = 5
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func (e *cliError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// importError tags an import failure with the exit code for its kind.
func importError(err error) error {
	switch service.ErrorKind(err) {
	case "":
		return nil
	case service.KindTemplate, service.KindValidation, service.KindEmpty:
		return withCode(ExitValidation, err)
	case service.KindPersistence:
		return withCode(ExitPersistence, err)
	default:
		return withCode(ExitError, err)
	}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withCode(ExitUsage, validate(cmd, args))
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return ExitUsage
	}
	return ExitError
}
