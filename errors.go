package hippo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reconquest/karma-go"
)

// Kind is a category of errors returned by the client.
type Kind int

const (
	// KindOther is a catch-all for errors without a structured category.
	KindOther Kind = iota

	// KindInvalidURL means the base URL or a request path can not be parsed.
	KindInvalidURL

	// KindInvalidConfig means the given Options are not valid.
	KindInvalidConfig

	// KindIO means a local I/O operation failed, reading a response body
	// included.
	KindIO

	// KindSerialization means a JSON payload could not be encoded or a
	// response could not be decoded.
	KindSerialization

	// KindHTTPClient means the request did not get any response: DNS,
	// connect, TLS or timeout failures.
	KindHTTPClient

	// KindInvalidRequest means the server responded with a status the
	// operation does not accept.
	KindInvalidRequest

	// KindServerError means the server failed to handle the request (5xx).
	KindServerError

	// KindUnauthorized means the credentials were rejected (401/403).
	KindUnauthorized
)

var kindNames = map[Kind]string{
	KindOther:          "other",
	KindInvalidURL:     "invalid url",
	KindInvalidConfig:  "invalid configuration",
	KindIO:             "i/o error",
	KindSerialization:  "invalid json",
	KindHTTPClient:     "http client error",
	KindInvalidRequest: "invalid request",
	KindServerError:    "server error",
	KindUnauthorized:   "unauthorized",
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(kind))
}

// Error is the only error type returned by the client. StatusCode and
// Message are set for errors produced from an HTTP response.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    *string
	Err        error

	details []detail
}

type detail struct {
	key   string
	value interface{}
}

func (err *Error) Error() string {
	context := karma.Describe("kind", err.Kind.String())
	for _, detail := range err.details {
		context = context.Describe(detail.key, detail.value)
	}
	if err.StatusCode != 0 {
		context = context.Describe("status_code", err.StatusCode)
	}

	var reason interface{} = err.Err
	if err.Err == nil {
		reason = err.description()
	}

	return context.Format(reason, err.summary()).Error()
}

func (err *Error) summary() string {
	switch err.Kind {
	case KindInvalidURL:
		return "invalid URL given"
	case KindInvalidConfig:
		return "invalid configuration"
	case KindIO:
		return "error while performing IO operation"
	case KindSerialization:
		return "invalid JSON"
	case KindHTTPClient:
		return "error while sending request"
	case KindInvalidRequest:
		return fmt.Sprintf("invalid request (status code %d)", err.StatusCode)
	case KindServerError:
		return "server has encountered an error"
	case KindUnauthorized:
		return "user has invalid credentials or is not authorized to " +
			"access the requested resource"
	default:
		return "unexpected error"
	}
}

func (err *Error) description() string {
	if err.Message != nil && strings.TrimSpace(*err.Message) != "" {
		return *err.Message
	}

	return err.Kind.String()
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Is reports whether target is an *Error of the same Kind, so sentinel values
// like ErrUnauthorized work with errors.Is.
func (err *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return other.Kind == err.Kind
}

var (
	ErrInvalidURL     = &Error{Kind: KindInvalidURL}
	ErrInvalidConfig  = &Error{Kind: KindInvalidConfig}
	ErrIO             = &Error{Kind: KindIO}
	ErrSerialization  = &Error{Kind: KindSerialization}
	ErrHTTPClient     = &Error{Kind: KindHTTPClient}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest}
	ErrServerError    = &Error{Kind: KindServerError}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrOther          = &Error{Kind: KindOther}
)

// IsKind reports whether err or any error it wraps is an *Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}

// describe attaches a key/value pair shown in the rendered error message.
func (err *Error) describe(key string, value interface{}) *Error {
	err.details = append(err.details, detail{key: key, value: value})
	return err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func newErrorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func newStatusError(kind Kind, statusCode int, body []byte) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    decodeMessage(body),
	}
}

// decodeMessage never fails: invalid UTF-8 sequences are replaced with the
// replacement character.
func decodeMessage(body []byte) *string {
	message := strings.ToValidUTF8(string(body), "\uFFFD")
	return &message
}
