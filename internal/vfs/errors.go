package vfs

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/termquest/internal/identity"
)

// Code classifies a filesystem failure.
type Code int

const (
	// CodeNotFound: a path component does not exist.
	CodeNotFound Code = iota + 1

	// CodeNotDirectory: a directory was required.
	CodeNotDirectory

	// CodeIsDirectory: a file was required.
	CodeIsDirectory

	// CodeAlreadyExists: the target name is taken.
	CodeAlreadyExists

	// CodeNotEmpty: the directory still has children.
	CodeNotEmpty

	// CodePermissionDenied: a permission bit check failed (EACCES).
	CodePermissionDenied

	// CodeNotPermitted: the operation needs ownership or root (EPERM).
	CodeNotPermitted

	// CodeBlocked: refused by the elevation denylist.
	CodeBlocked

	// CodePrivilegeRequired: administrator-only operation.
	CodePrivilegeRequired

	// CodeInvalidMode: malformed chmod expression.
	CodeInvalidMode

	// CodeInvalidRegex: malformed search pattern.
	CodeInvalidRegex

	// CodeInvalidPath: path rejected by the write-path normalizer.
	CodeInvalidPath

	// CodeInvalidArgument: any other malformed input.
	CodeInvalidArgument

	// CodeIntoItself: a directory move whose target lies inside the source.
	CodeIntoItself

	// CodeInvalidSnapshot: restore input is structurally unusable.
	CodeInvalidSnapshot
)

// String returns a short name for the code.
func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "NotFound"
	case CodeNotDirectory:
		return "NotDirectory"
	case CodeIsDirectory:
		return "IsDirectory"
	case CodeAlreadyExists:
		return "AlreadyExists"
	case CodeNotEmpty:
		return "NotEmpty"
	case CodePermissionDenied:
		return "PermissionDenied"
	case CodeNotPermitted:
		return "NotPermitted"
	case CodeBlocked:
		return "Blocked"
	case CodePrivilegeRequired:
		return "PrivilegeRequired"
	case CodeInvalidMode:
		return "InvalidMode"
	case CodeInvalidRegex:
		return "InvalidRegex"
	case CodeInvalidPath:
		return "InvalidPath"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeIntoItself:
		return "IntoItself"
	case CodeInvalidSnapshot:
		return "InvalidSnapshot"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// message is the user-facing text for each code.
func (c Code) message() string {
	switch c {
	case CodeNotFound:
		return "No such file or directory"
	case CodeNotDirectory:
		return "Not a directory"
	case CodeIsDirectory:
		return "Is a directory"
	case CodeAlreadyExists:
		return "File exists"
	case CodeNotEmpty:
		return "Directory not empty"
	case CodePermissionDenied:
		return "Permission denied"
	case CodeNotPermitted:
		return "Operation not permitted"
	case CodeBlocked:
		return "blocked by security policy"
	case CodePrivilegeRequired:
		return "permission denied (are you root?)"
	case CodeInvalidMode:
		return "invalid mode"
	case CodeInvalidRegex:
		return "invalid regular expression"
	case CodeInvalidPath:
		return "Invalid path"
	case CodeIntoItself:
		return "Cannot move a directory into itself"
	case CodeInvalidSnapshot:
		return "invalid snapshot"
	default:
		return "invalid argument"
	}
}

// Error is the error type returned by every tree operation.
type Error struct {
	Code    Code
	Op      string
	Path    string
	Message string
}

// Reason returns the message without the path.
func (e *Error) Reason() string {
	if e.Message == "" {
		return e.Code.message()
	}
	return e.Message
}

// Error renders "path: message", or just the message without a path.
func (e *Error) Error() string {
	msg := e.Reason()
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

// Is matches on code, so errors.Is(err, ErrNotFound) works for any path.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrNotDirectory      = &Error{Code: CodeNotDirectory}
	ErrIsDirectory       = &Error{Code: CodeIsDirectory}
	ErrAlreadyExists     = &Error{Code: CodeAlreadyExists}
	ErrNotEmpty          = &Error{Code: CodeNotEmpty}
	ErrPermissionDenied  = &Error{Code: CodePermissionDenied}
	ErrNotPermitted      = &Error{Code: CodeNotPermitted}
	ErrBlocked           = &Error{Code: CodeBlocked}
	ErrPrivilegeRequired = &Error{Code: CodePrivilegeRequired}
	ErrInvalidMode       = &Error{Code: CodeInvalidMode}
	ErrInvalidRegex      = &Error{Code: CodeInvalidRegex}
	ErrInvalidPath       = &Error{Code: CodeInvalidPath}
	ErrInvalidArgument   = &Error{Code: CodeInvalidArgument}
	ErrIntoItself        = &Error{Code: CodeIntoItself}
	ErrInvalidSnapshot   = &Error{Code: CodeInvalidSnapshot}
)

// NewError builds an Error with the default message for code.
func NewError(code Code, op, path string) *Error {
	return &Error{Code: code, Op: op, Path: path}
}

// Errorf builds an Error with a formatted message.
func Errorf(code Code, op, path, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Path: path, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of err, or 0 if err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// fromIdentity maps identity package errors onto codes.
func fromIdentity(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, identity.ErrInvalidMode):
		return &Error{Code: CodeInvalidMode, Op: op, Message: err.Error()}
	case errors.Is(err, identity.ErrBlocked):
		return &Error{Code: CodeBlocked, Op: op, Message: err.Error()}
	case errors.Is(err, identity.ErrProtectedUser):
		return &Error{Code: CodeNotPermitted, Op: op, Message: err.Error()}
	default:
		return &Error{Code: CodeInvalidArgument, Op: op, Message: err.Error()}
	}
}
