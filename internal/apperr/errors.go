package apperr

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies application errors.
type Kind int

const (
	KindIO Kind = iota
	KindNotFound
	KindAccessDenied
	KindUnsupportedFormat
	KindArchive
	KindCatalog
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAccessDenied:
		return "access denied"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindArchive:
		return "archive error"
	case KindCatalog:
		return "catalog error"
	case KindConfig:
		return "configuration error"
	default:
		return "i/o error"
	}
}

// Error is an application error with an optional path and cause.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error.
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Config reports an invalid configuration value.
func Config(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

// FromOS classifies an error returned by the os/io/fs packages.
func FromOS(path string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return New(KindNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return New(KindAccessDenied, path, err)
	default:
		return New(KindIO, path, err)
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return KindIO, false
}

// Recoverable reports whether the session can continue after err.
// Configuration and catalog failures are fatal at startup.
func Recoverable(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	return kind != KindConfig && kind != KindCatalog
}

// UserMessage renders err for the status line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case KindNotFound:
		return "File not found: " + appErr.Path
	case KindAccessDenied:
		return "Access denied: " + appErr.Path
	case KindUnsupportedFormat:
		return "Unsupported format: " + appErr.Path
	case KindArchive:
		if appErr.Err != nil {
			return "Archive error: " + appErr.Err.Error()
		}
		return "Archive error: " + appErr.Path
	default:
		return appErr.Error()
	}
}
