// Package testutil provides test doubles and assertions for code that uses
// generated restahead clients.
// It only depends on the restahead runtime and can be imported from any test.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"testing"

	"github.com/broady/restahead"
)

// ResponseBuilder builds canned responses with a fluent API.
type ResponseBuilder struct {
	status int
	header http.Header
	body   []byte
	err    error
}

// Respond starts a response with the given status code.
func Respond(status int) *ResponseBuilder {
	return &ResponseBuilder{status: status, header: make(http.Header)}
}

// Fail builds an outcome that completes with err instead of a response.
func Fail(err error) *ResponseBuilder {
	return &ResponseBuilder{err: err}
}

// WithJSON sets a JSON body and Content-Type.
func (b *ResponseBuilder) WithJSON(v any) *ResponseBuilder {
	data, _ := json.Marshal(v)
	b.body = data
	b.header.Set("Content-Type", "application/json")
	return b
}

// WithBody sets the raw body.
func (b *ResponseBuilder) WithBody(body string) *ResponseBuilder {
	b.body = []byte(body)
	return b
}

// WithHeader adds a response header.
func (b *ResponseBuilder) WithHeader(key, value string) *ResponseBuilder {
	b.header.Add(key, value)
	return b
}

// Build returns the response, or the failure set with [Fail].
func (b *ResponseBuilder) Build() (*restahead.Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	return restahead.NewResponse(b.status, b.header.Clone(), slices.Clone(b.body)), nil
}

// Call is a request observed by a [FakeClient].
type Call struct {
	Service string
	Method  string
	Request *restahead.Request
}

// FakeClient is a [restahead.Client] that records requests and answers them
// from canned responses. Responses registered with [FakeClient.On] win over
// the default.
type FakeClient struct {
	mu       sync.Mutex
	calls    []Call
	routes   map[string]*ResponseBuilder
	fallback *ResponseBuilder
}

// NewFakeClient returns a client answering every request with fallback.
// A nil fallback answers 200 with an empty body.
func NewFakeClient(fallback *ResponseBuilder) *FakeClient {
	if fallback == nil {
		fallback = Respond(http.StatusOK)
	}
	return &FakeClient{routes: make(map[string]*ResponseBuilder), fallback: fallback}
}

// On answers requests with the given verb and path with resp.
func (c *FakeClient) On(verb restahead.Verb, path string, resp *ResponseBuilder) *FakeClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[verb.String()+" "+path] = resp
	return c
}

func (c *FakeClient) Execute(ctx context.Context, req *restahead.Request) *restahead.Future[*restahead.Response] {
	service, method, _ := restahead.CallFromContext(ctx)

	c.mu.Lock()
	c.calls = append(c.calls, Call{Service: service, Method: method, Request: req})
	resp, ok := c.routes[req.Verb().String()+" "+req.Path()]
	if !ok {
		resp = c.fallback
	}
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return restahead.Failed[*restahead.Response](err)
	}
	return restahead.Go(resp.Build)
}

// Calls returns the recorded calls in order.
func (c *FakeClient) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.calls)
}

// LastCall returns the most recent call. It fails the test if there is none.
func (c *FakeClient) LastCall(t testing.TB) Call {
	t.Helper()
	calls := c.Calls()
	if len(calls) == 0 {
		t.Fatal("no requests were executed")
	}
	return calls[len(calls)-1]
}

// FakeConverter decodes bodies as JSON and counts its calls.
type FakeConverter struct {
	mu    sync.Mutex
	calls int
}

func (c *FakeConverter) Serialize(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *FakeConverter) Deserialize(r *restahead.Response, target any) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return json.NewDecoder(r.Body).Decode(target)
}

// Calls returns how many bodies were decoded.
func (c *FakeConverter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// AssertRequest checks the verb and path of req.
func AssertRequest(t testing.TB, req *restahead.Request, verb restahead.Verb, path string) {
	t.Helper()
	if req.Verb() != verb || req.Path() != path {
		t.Errorf("expected request %s %s, got %s %s", verb, path, req.Verb(), req.Path())
	}
}

// AssertHeader checks the values of a request header, in order.
func AssertHeader(t testing.TB, req *restahead.Request, name string, values ...string) {
	t.Helper()
	got := req.HeaderValues(name)
	if !slices.Equal(got, values) {
		t.Errorf("expected header %s=%q, got %q", name, values, got)
	}
}

// AssertRequestFailed checks that err is a *restahead.RequestFailedError with
// the given status code and returns it.
func AssertRequestFailed(t testing.TB, err error, status int) *restahead.RequestFailedError {
	t.Helper()
	var failed *restahead.RequestFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected *RequestFailedError, got %T: %v", err, err)
	}
	if failed.StatusCode != status {
		t.Errorf("expected status %d, got %d", status, failed.StatusCode)
	}
	return failed
}

// AssertClientError checks that err is a *restahead.ClientError with the
// given code and returns it.
func AssertClientError(t testing.TB, err error, code restahead.ErrorCode) *restahead.ClientError {
	t.Helper()
	var clientErr *restahead.ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected *ClientError, got %T: %v", err, err)
	}
	if clientErr.Code != code {
		t.Errorf("expected error code %s, got %s (%v)", code, clientErr.Code, clientErr.Err)
	}
	return clientErr
}

// AssertStatus checks the status code of resp.
func AssertStatus(t testing.TB, resp *restahead.Response, status int) {
	t.Helper()
	if resp == nil {
		t.Fatalf("expected status %d, got no response", status)
	}
	if resp.StatusCode != status {
		t.Errorf("expected status %d, got %d", status, resp.StatusCode)
	}
}
