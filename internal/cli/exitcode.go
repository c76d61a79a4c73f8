package cli

import (
	"errors"
	"fmt"

	"github.com/avivsinai/threadlabel/internal/format"
	"github.com/avivsinai/threadlabel/internal/thread"
)

// Exit codes for CLI commands.
// These provide semantic meaning for scripting and automation.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates an I/O, configuration or other error.
	ExitError = 1

	// ExitUsage indicates invalid arguments or flags were provided.
	ExitUsage = 2

	// ExitInput indicates the thread input was not valid JSON or did not
	// have the expected shape.
	ExitInput = 3

	// ExitTimeout indicates watch stopped at --timeout without labelling
	// anything.
	ExitTimeout = 4
)

// ExitCodeError wraps an error with a specific exit code.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess (0) if err is nil.
// Returns the wrapped code if err is or wraps an *ExitCodeError.
// Returns ExitError (1) for all other errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// WithExitCode wraps an error with a specific exit code.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitCodeError{Code: code, Err: err}
}

// UsageError creates an error with ExitUsage code.
func UsageError(format string, args ...any) error {
	return &ExitCodeError{
		Code: ExitUsage,
		Err:  fmt.Errorf(format, args...),
	}
}

// TimeoutError creates an error with ExitTimeout code.
func TimeoutError(format string, args ...any) error {
	return &ExitCodeError{
		Code: ExitTimeout,
		Err:  fmt.Errorf(format, args...),
	}
}

// inputError tags malformed JSON and shape errors with ExitInput and leaves
// everything else alone.
func inputError(err error) error {
	if isInputError(err) {
		return WithExitCode(ExitInput, err)
	}
	return err
}

func isInputError(err error) bool {
	return errors.Is(err, format.ErrMalformedJSON) || errors.Is(err, thread.ErrInputShape)
}
