// Package errkind provides the tagged error taxonomy shared by every
// component of the container runtime core.
package errkind

import (
	"errors"
	"fmt"
)

// Kind identifies the broad class of failure a Error carries.
type Kind int

const (
	// Io covers generic file descriptor and filesystem I/O failures.
	Io Kind = iota
	// Syscall covers a failing raw syscall not covered by a more
	// specific kind below.
	Syscall
	// NamespaceSetup covers unshare, sethostname, and pid-namespace fork
	// failures.
	NamespaceSetup
	// Filesystem covers rootfs validation and pivot_root failures.
	Filesystem
	// ProcessExecution covers executable resolution, exec, and
	// wait/reap failures. A command's non-zero or signal-terminated
	// exit is reported as an exit code, not as an error of this kind.
	ProcessExecution
	// Cgroup covers cgroup v2 setup, attach, and teardown failures.
	Cgroup
	// InvalidConfiguration covers malformed or unsupported input
	// configuration (including cgroup v1 detection).
	InvalidConfiguration
	// Initialization covers failures during early process bring-up
	// not yet attributable to a specific subsystem.
	Initialization
	// RootRequired is returned when the effective uid is not 0.
	RootRequired
	// InvalidString covers a NUL byte found in a string destined for a
	// NUL-terminated C string (argv, envp).
	InvalidString
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "Io"
	case Syscall:
		return "Syscall"
	case NamespaceSetup:
		return "NamespaceSetup"
	case Filesystem:
		return "Filesystem"
	case ProcessExecution:
		return "ProcessExecution"
	case Cgroup:
		return "Cgroup"
	case InvalidConfiguration:
		return "InvalidConfiguration"
	case Initialization:
		return "Initialization"
	case RootRequired:
		return "RootRequired"
	case InvalidString:
		return "InvalidString"
	default:
		return "Unknown"
	}
}

// Error is a tagged, contextual error. It preserves its Kind across any
// number of Context decorations so callers can branch on the failure
// class without string matching.
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New creates an Error of the given kind with the given message.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap creates an Error of the given kind wrapping an existing error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

// Kind reports the error's tagged kind.
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.kind, e.message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Context prepends a description to the error while preserving its
// kind — identity-preserving decoration, per the taxonomy contract.
func (e *Error) Context(description string) *Error {
	return &Error{
		kind:    e.kind,
		message: fmt.Sprintf("%s: %s", description, e.message),
		cause:   e.cause,
	}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}
