package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // analysis produced failures
	ExitCommandError = 2 // command error (bad paths, unreadable schemas, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode extracts the exit code from an error. Returns ExitFailure if
// the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles structured vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the standard envelope for structured CLI output.
type Response struct {
	Status string    `json:"status" yaml:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"`
}

// CLIError is the error structure for structured responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Success emits a successful result in the configured format. Text output is
// the caller's responsibility; Success reports whether it handled the
// rendering.
func (f *OutputFormatter) Success(data any) (bool, error) {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return true, enc.Encode(Response{Status: "ok", Data: data})
	case "yaml":
		return true, yaml.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	default:
		return false, nil
	}
}

// Error emits an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "error", Error: &CLIError{Code: code, Message: message}})
	case "yaml":
		return yaml.NewEncoder(f.Writer).Encode(Response{Status: "error", Error: &CLIError{Code: code, Message: message}})
	default:
		_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
		return err
	}
}
