package restahead

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrorCode classifies a [ClientError].
type ErrorCode string

const (
	CodeTransport  ErrorCode = "transport"
	CodeCanceled   ErrorCode = "canceled"
	CodeConversion ErrorCode = "conversion"
	CodeInternal   ErrorCode = "internal"
)

// ClientError is the unified error returned by generated clients for every
// failure that is neither a [RequestFailedError] nor a declared passthrough.
type ClientError struct {
	Code ErrorCode
	Err  error
}

func (e *ClientError) Error() string {
	if e.Err == nil {
		return "restahead: " + string(e.Code)
	}
	return fmt.Sprintf("restahead: %s: %v", e.Code, e.Err)
}

func (e *ClientError) Unwrap() error { return e.Err }

// NewClientError wraps err with the given code.
func NewClientError(code ErrorCode, err error) *ClientError {
	return &ClientError{Code: code, Err: err}
}

// RequestFailedError reports a response whose status code is outside [200, 300).
// Body holds the raw response body.
type RequestFailedError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// maxErrorBody bounds how much of the body Error includes.
const maxErrorBody = 256

func (e *RequestFailedError) Error() string {
	msg := fmt.Sprintf("request failed with status %d", e.StatusCode)
	if text := http.StatusText(e.StatusCode); text != "" {
		msg += " (" + text + ")"
	}
	if len(e.Body) == 0 {
		return msg
	}
	body := e.Body
	truncated := false
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
		truncated = true
	}
	if !utf8.Valid(body) {
		return fmt.Sprintf("%s: %d bytes of body", msg, len(e.Body))
	}
	text := strings.TrimSpace(string(body))
	if truncated {
		text += "..."
	}
	return msg + ": " + text
}

// TransportError reports a failure of the underlying transport: the request
// could not be sent or the response could not be received.
type TransportError struct {
	Verb Verb
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Verb, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConversionError reports a response body that could not be converted to the
// declared type.
type ConversionError struct {
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert response body to %s: %v", e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ErrNoConverter is reported when a converted value is declared but the
// client was built without a [Converter].
var ErrNoConverter = errors.New("no converter configured")

// Passthrough is the set of expected failure kinds a declaration returns
// undecorated instead of wrapping them in a [ClientError].
type Passthrough uint8

const (
	// PassTransport returns *TransportError as is.
	PassTransport Passthrough = 1 << iota
	// PassCanceled returns context.Canceled and context.DeadlineExceeded as is.
	PassCanceled
)

// PassNone wraps every failure.
const PassNone Passthrough = 0

// Has reports whether all kinds of k are in p.
func (p Passthrough) Has(k Passthrough) bool {
	return p&k == k
}

func (p Passthrough) String() string {
	if p == PassNone {
		return "none"
	}
	var parts []string
	if p.Has(PassTransport) {
		parts = append(parts, "transport")
	}
	if p.Has(PassCanceled) {
		parts = append(parts, "canceled")
	}
	return strings.Join(parts, "|")
}

// NormalizeError maps a failure observed after a call resolved to the error a
// generated method returns.
//
//   - nil stays nil;
//   - *RequestFailedError and *ClientError are returned as is;
//   - context cancellation is returned as is if pass has PassCanceled;
//   - *TransportError is returned as is if pass has PassTransport;
//   - everything else is wrapped in a *ClientError.
func NormalizeError(err error, pass Passthrough) error {
	if err == nil {
		return nil
	}

	var failed *RequestFailedError
	if errors.As(err, &failed) {
		return failed
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if pass.Has(PassCanceled) {
			return err
		}
		return NewClientError(CodeCanceled, err)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if pass.Has(PassTransport) {
			return transportErr
		}
		return NewClientError(CodeTransport, err)
	}

	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return NewClientError(CodeConversion, err)
	}

	return NewClientError(CodeInternal, err)
}
