// Package errors provides the error taxonomy of the qibuild configuration tool.
//
// Every failure the configuration store can surface is a *ConfigError carrying
// a Code, so callers can tell an unreadable file from a corrupt one without
// matching on message text.
//
// # Error Codes
//
//   - IO: the file could not be read or written
//   - PARSE: the file was read but is not well-formed XML
//   - NOT_FOUND: a named IDE or build configuration does not exist
//   - VALIDATION: the caller passed an unusable value (e.g. an empty name)
//   - LOCK: the configuration file lock could not be acquired
//   - INTERNAL: anything else
//
// Missing elements or attributes are never errors; the store answers with
// empty values instead.
//
// # Usage
//
//	if err := store.Read(path); err != nil {
//	    if errors.Is(err, errors.ErrParse) {
//	        // file exists but is corrupt
//	    }
//	    if errors.Is(err, fs.ErrNotExist) {
//	        // the wrapped *os.PathError stays in the chain
//	    }
//	}
//
// Use errors.As to reach the structured fields:
//
//	var cfgErr *errors.ConfigError
//	if errors.As(err, &cfgErr) {
//	    fmt.Println(cfgErr.Code, cfgErr.Name)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"  // Named entry not found
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation failed
	ErrCodeIO         ErrorCode = "IO"         // File read/write failure
	ErrCodeParse      ErrorCode = "PARSE"      // Malformed XML
	ErrCodeLock       ErrorCode = "LOCK"       // File lock not acquired
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// ConfigError represents a structured error with context about the operation.
type ConfigError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Name    string    // IDE or configuration name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Name, msg)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *ConfigError with the same code.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors, for use with errors.Is.
var (
	// ErrIdeNotFound indicates the requested IDE does not exist.
	ErrIdeNotFound = &ConfigError{Code: ErrCodeNotFound, Message: "ide not found"}

	// ErrConfigNotFound indicates the requested build configuration does not exist.
	ErrConfigNotFound = &ConfigError{Code: ErrCodeNotFound, Message: "config not found"}

	// ErrInvalidName indicates an empty or otherwise unusable entry name.
	ErrInvalidName = &ConfigError{Code: ErrCodeValidation, Message: "invalid name"}

	// ErrIO indicates the configuration file could not be read or written.
	ErrIO = &ConfigError{Code: ErrCodeIO, Message: "i/o failure"}

	// ErrParse indicates the configuration file is not well-formed XML.
	ErrParse = &ConfigError{Code: ErrCodeParse, Message: "malformed configuration"}

	// ErrLockTimeout indicates another process holds the configuration lock.
	ErrLockTimeout = &ConfigError{Code: ErrCodeLock, Message: "configuration is locked"}
)

// NotFound creates an error for a named entry that doesn't exist.
// kind is "ide" or "config".
func NotFound(kind, name string) error {
	return &ConfigError{
		Code:    ErrCodeNotFound,
		Message: kind + " not found",
		Name:    name,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &ConfigError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &ConfigError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapName creates an error with entry-name context and underlying error.
func WrapName(code ErrorCode, name string, err error) error {
	return &ConfigError{
		Code: code,
		Name: name,
		Err:  err,
	}
}

// CodeOf returns the code of the first *ConfigError in err's chain,
// or "" when there is none.
func CodeOf(err error) ErrorCode {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Code
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
