package project

import "errors"

// ErrorKind classifies a generation failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAlreadyExists
	KindInvalidPermission
)

func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyExists:
		return "already exists"
	case KindInvalidPermission:
		return "invalid permission"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is; any *Error matches the sentinel of its kind.
var (
	ErrAlreadyExists     = errors.New("project: already exists")
	ErrInvalidPermission = errors.New("project: invalid permission")
	ErrUnknown           = errors.New("project: unknown error")
)

// Error is returned by Template.Generate.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// AlreadyExists reports an output that is already present.
func AlreadyExists(message string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: message}
}

// InvalidPermission reports an output location that cannot be written.
func InvalidPermission(message string) *Error {
	return &Error{Kind: KindInvalidPermission, Message: message}
}

// Unknown reports any other failure.
func Unknown(message string) *Error {
	return &Error{Kind: KindUnknown, Message: message}
}

// Wrap attaches the underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	msg := "project: " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrAlreadyExists:
		return e.Kind == KindAlreadyExists
	case ErrInvalidPermission:
		return e.Kind == KindInvalidPermission
	case ErrUnknown:
		return e.Kind == KindUnknown
	}
	return false
}
