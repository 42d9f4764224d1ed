// Package memerr provides coded errors for the mem CLI, built on samber/oops.
// Codes are dotted component.operation.reason strings so callers can branch
// on the trailing reason without string-matching messages.
package memerr

import (
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeStoreNotFound     Code = "store.memory.not_found"
	CodeStoreInvalidInput Code = "store.memory.invalid_input"
	CodeStoreDatabase     Code = "store.database.failure"

	CodeConfigResolve Code = "config.path.failure"

	CodeImportInvalid Code = "import.file.invalid_format"
	CodeCLIInput      Code = "cli.input.invalid_input"
)

// New creates a coded error.
func New(code Code, msg string) error {
	return oops.Code(code).New(msg)
}

// Errorf creates a coded error with a formatted message.
func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

// Wrapf wraps err with a code and formatted message. Returns nil for nil err.
func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return oops.Code(code).Wrapf(err, format, args...)
}

// CodeOf extracts the code from an error chain, or "" when none is attached.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}
	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}
	return ""
}

// HasCode reports whether err carries exactly the given code.
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// IsNotFound reports whether err's code reason is not_found.
func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

// IsInvalidInput reports whether err's code reason is invalid_input or
// invalid_format.
func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid_input" || r == "invalid_format"
}

func reason(code Code) string {
	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
