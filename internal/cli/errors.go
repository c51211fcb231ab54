package cli

import (
	"errors"
	"fmt"

	"github.com/vburojevic/logstat/internal/output"
)

// Error codes surfaced by commands
const (
	CodeSourceFailed = "SOURCE_FAILED"
	CodeParseFailed  = "PARSE_FAILED"
	CodeInvalidRange = "INVALID_RANGE"
	CodeWriteFailed  = "WRITE_FAILED"
	CodeConfigFailed = "CONFIG_FAILED"
)

// CLIError is a failure that has already been reported to the user
type CLIError struct {
	Code    string
	Message string
	Hint    string
	Err     error
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *CLIError) Unwrap() error { return e.Err }

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	if globals != nil && globals.Format == output.FormatNDJSON {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint...)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
		if len(hint) > 0 && hint[0] != "" {
			fmt.Fprintf(globals.Stderr, "Hint: %s\n", hint[0])
		}
	}
	return &CLIError{Code: code, Message: message, Hint: firstHint(hint)}
}

// outputFailure reports err under code and keeps it in the returned chain
func outputFailure(globals *Globals, code string, err error, hint string) error {
	_ = outputErrorCommon(globals, code, err.Error(), hint)
	return &CLIError{Code: code, Message: err.Error(), Hint: hint, Err: err}
}

func firstHint(hint []string) string {
	if len(hint) == 0 {
		return ""
	}
	return hint[0]
}

// ErrorCode returns the code of a CLIError anywhere in err's chain
func ErrorCode(err error) string {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
