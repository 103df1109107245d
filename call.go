package restahead

import (
	"context"
	"errors"
	"reflect"
)

// errNoResponse is reported when a transport completes without a response or error.
var errNoResponse = errors.New("transport completed without a response")

// Await blocks until f completes or ctx ends and normalizes any failure with
// [NormalizeError]. Generated methods with a plain return type use it to adapt
// the asynchronous transport call.
//
// If ctx ends first, a *Response that arrives later has its body closed.
func Await[T any](ctx context.Context, f *Future[T], pass Passthrough) (T, error) {
	v, err := f.Await(ctx)
	if err != nil {
		select {
		case <-f.Done():
		default:
			go closeLate(f)
		}
		var zero T
		return zero, NormalizeError(err, pass)
	}
	return v, nil
}

func closeLate[T any](f *Future[T]) {
	v, _ := f.Result()
	if r, ok := any(v).(*Response); ok && r != nil && r.Body != nil {
		r.Body.Close()
	}
}

// Normalized returns a future that completes like f, with its failure
// normalized by [NormalizeError]. Generated methods returning a *Future use it
// so both call styles report the same errors.
func Normalized[T any](f *Future[T], pass Passthrough) *Future[T] {
	return transform(f, func(v T, err error) (T, error) {
		if err != nil {
			var zero T
			return zero, NormalizeError(err, pass)
		}
		return v, nil
	})
}

// Discard waits for the response only to observe failure; the body is closed
// unread and the status code is not checked.
func Discard(f *Future[*Response]) *Future[struct{}] {
	return Then(f, func(r *Response) (struct{}, error) {
		if r == nil {
			return struct{}{}, errNoResponse
		}
		if r.Body != nil {
			r.Body.Close()
		}
		return struct{}{}, nil
	})
}

// CheckStatus returns a *RequestFailedError carrying the status and the raw
// body when r is not successful. The body is consumed in that case.
func CheckStatus(r *Response) error {
	if r.Successful() {
		return nil
	}
	body, _ := r.ReadBody()
	return &RequestFailedError{
		StatusCode: r.StatusCode,
		Header:     r.Header,
		Body:       body,
	}
}

// Convert returns a future of the response body decoded into a T.
// Responses outside [200, 300) fail with *RequestFailedError without being
// decoded; decoding failures fail with *ConversionError.
func Convert[T any](f *Future[*Response], c Converter) *Future[T] {
	return Then(f, func(r *Response) (T, error) {
		var v T
		if r == nil {
			return v, errNoResponse
		}
		if err := CheckStatus(r); err != nil {
			return v, err
		}
		if r.Body != nil {
			defer r.Body.Close()
		}
		if c == nil {
			return v, NewClientError(CodeConversion, ErrNoConverter)
		}
		if err := c.Deserialize(r, &v); err != nil {
			return v, &ConversionError{Target: reflect.TypeFor[T]().String(), Err: err}
		}
		return v, nil
	})
}
