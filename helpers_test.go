package restahead

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
)

// stubClient records executed requests and answers with a canned response.
type stubClient struct {
	mu       sync.Mutex
	requests []*Request
	respond  func(req *Request) (*Response, error)
}

func newStubClient(status int, body string) *stubClient {
	return &stubClient{
		respond: func(*Request) (*Response, error) {
			return NewResponse(status, nil, []byte(body)), nil
		},
	}
}

func failingClient(err error) *stubClient {
	return &stubClient{
		respond: func(*Request) (*Response, error) {
			return nil, err
		},
	}
}

func (c *stubClient) Execute(ctx context.Context, req *Request) *Future[*Response] {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return Go(func() (*Response, error) {
		return c.respond(req)
	})
}

func (c *stubClient) last() *Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return nil
	}
	return c.requests[len(c.requests)-1]
}

// jsonConverter is a minimal converter for tests in this package.
type jsonConverter struct {
	calls int
}

func (c *jsonConverter) Serialize(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *jsonConverter) Deserialize(r *Response, target any) error {
	c.calls++
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// trackingBody records whether it was closed.
type trackingBody struct {
	io.Reader
	once   sync.Once
	closed chan struct{}
}

func newTrackingBody(s string) *trackingBody {
	return &trackingBody{Reader: strings.NewReader(s), closed: make(chan struct{})}
}

func (b *trackingBody) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}

func (b *trackingBody) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}

var errBoom = errors.New("boom")
