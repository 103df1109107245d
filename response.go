package restahead

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// Response is the raw result of executing a [Request].
//
// Body is owned by whoever receives the Response. Generated methods returning
// *Response hand it over unread; the caller must close it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// NewResponse builds a Response around an in-memory body.
// It is mostly useful for transports that buffer, and for tests.
func NewResponse(status int, header http.Header, body []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}
	return &Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

// Successful reports whether the status code is in [200, 300).
func (r *Response) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ReadBody reads the remaining body and closes it.
func (r *Response) ReadBody() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return data, fmt.Errorf("read response body: %w", err)
	}
	return data, nil
}

// ContentType returns the Content-Type header of the response.
func (r *Response) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}
