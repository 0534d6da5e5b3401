// Package errors provides structured error types for threadchat.
// These errors record which operation failed and how, so callers can pick the
// right user-facing policy (silent degrade, inline apology, blocking alert).
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Status is an HTTP status code attached to a KindHTTPStatus error.
type Status int

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindTimeout
	KindHTTPStatus
	KindRemote
	KindDecode
	KindConfig
	KindStore
	KindBusy
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "unexpected HTTP status"
	case KindRemote:
		return "remote error"
	case KindDecode:
		return "decode error"
	case KindConfig:
		return "configuration error"
	case KindStore:
		return "local store error"
	case KindBusy:
		return "operation in progress"
	case KindExternal:
		return "external command error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for threadchat.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
	Status  Status // HTTP status, zero unless Kind is KindHTTPStatus
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - Status: the HTTP status code
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case Status:
			e.Status = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return int(e.Status)
	}
	return 0
}

// IsTransport reports whether err came from the transport or HTTP layer rather
// than from an application-level error payload.
func IsTransport(err error) bool {
	switch GetKind(err) {
	case KindNetwork, KindTimeout, KindHTTPStatus, KindDecode:
		return true
	}
	return false
}

// Remote chat service errors
func RequestFailed(op Op, err error) error {
	return E(op, KindNetwork, "request failed", err)
}

func RequestTimedOut(op Op, err error) error {
	return E(op, KindTimeout, "request timed out", err)
}

func UnexpectedStatus(op Op, code int) error {
	return E(op, KindHTTPStatus, Status(code), fmt.Sprintf("HTTP error! status: %d", code))
}

func DecodeFailed(op Op, err error) error {
	return E(op, KindDecode, "failed to decode response", err)
}

func RemoteError(op Op, message string) error {
	return E(op, KindRemote, message)
}

// Thread errors
func ThreadBusy(threadID string) error {
	return E(Op("session.Acquire"), KindBusy, fmt.Sprintf("an operation is already in progress for %s", threadID))
}

func ThreadIDRequired(op Op) error {
	return E(op, KindInvalid, "thread id is required")
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Local store errors
func StoreFailed(op Op, err error) error {
	return E(op, KindStore, err)
}

// External command errors
func CommandNotConfigured(name string) error {
	return E(Op("process.Run"), KindConfig, fmt.Sprintf("%s is not configured", name))
}

func CommandFailed(name string, err error) error {
	return E(Op("process.Run"), KindExternal, fmt.Sprintf("%s failed", name), err)
}
