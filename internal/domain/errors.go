package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for presentation and for errors.Is checks.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigNotFound
	KindConfigUnreadable
	KindConfigEmpty
	KindConfigParse
	KindConfigSchema
	KindGroupNotFound
	KindLinkNotFound
	KindConfigWrite
	KindValidation
	KindLaunch
)

func (k Kind) String() string {
	switch k {
	case KindConfigNotFound:
		return "ConfigNotFound"
	case KindConfigUnreadable:
		return "ConfigUnreadable"
	case KindConfigEmpty:
		return "ConfigEmpty"
	case KindConfigParse:
		return "ConfigParseError"
	case KindConfigSchema:
		return "ConfigSchemaError"
	case KindGroupNotFound:
		return "GroupNotFound"
	case KindLinkNotFound:
		return "LinkNotFound"
	case KindConfigWrite:
		return "ConfigWriteError"
	case KindValidation:
		return "ValidationError"
	case KindLaunch:
		return "LaunchError"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrConfigNotFound   = &Error{Kind: KindConfigNotFound}
	ErrConfigUnreadable = &Error{Kind: KindConfigUnreadable}
	ErrConfigEmpty      = &Error{Kind: KindConfigEmpty}
	ErrConfigParse      = &Error{Kind: KindConfigParse}
	ErrConfigSchema     = &Error{Kind: KindConfigSchema}
	ErrGroupNotFound    = &Error{Kind: KindGroupNotFound}
	ErrLinkNotFound     = &Error{Kind: KindLinkNotFound}
	ErrConfigWrite      = &Error{Kind: KindConfigWrite}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrLaunch           = &Error{Kind: KindLaunch}
)

// Error is a user-facing failure: a short Title for the notification
// headline and a Message detailing what to fix.
type Error struct {
	Kind    Kind
	Title   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Errorf builds an *Error with a formatted message.
func Errorf(kind Kind, title, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Title: title, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around a cause.
func Wrap(kind Kind, title, message string, err error) *Error {
	return &Error{Kind: kind, Title: title, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// TitleOf returns a notification title for err.
func TitleOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Title != "" {
		return e.Title
	}
	return "Error"
}

// MessageOf returns the detail message for err without its title.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
