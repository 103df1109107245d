package restahead

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// HTTPClient is a [Client] backed by net/http. Request paths are appended to
// the base URL as is.
//
// Header entries keep their order within a name. net/http writes distinct
// header names in sorted order, so order across names is not preserved on the
// wire.
type HTTPClient struct {
	baseURL    string
	client     *http.Client
	logger     *slog.Logger
	decompress bool
}

// HTTPOption configures an [HTTPClient].
type HTTPOption func(*HTTPClient)

// WithHTTPClient sets the underlying *http.Client. Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDecompression advertises zstd and gzip in Accept-Encoding, unless the
// request sets it, and decodes compressed response bodies.
func WithDecompression() HTTPOption {
	return func(c *HTTPClient) {
		c.decompress = true
	}
}

// NewHTTPClient creates an HTTPClient for baseURL, e.g. "https://httpbin.org".
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL request paths are appended to.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Execute sends req on a new goroutine.
func (c *HTTPClient) Execute(ctx context.Context, req *Request) *Future[*Response] {
	return Go(func() (*Response, error) {
		return c.do(ctx, req)
	})
}

func (c *HTTPClient) do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Verb().String(), c.baseURL+req.Path(), nil)
	if err != nil {
		return nil, &TransportError{Verb: req.Verb(), Path: req.Path(), Err: err}
	}
	for _, h := range req.headers {
		httpReq.Header.Add(h.Name, h.Value)
	}
	if c.decompress && httpReq.Header.Get("Accept-Encoding") == "" {
		httpReq.Header.Set("Accept-Encoding", "zstd, gzip")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "transport failure",
			slog.String("verb", req.Verb().String()),
			slog.String("path", req.Path()),
			slog.Any("error", err))
		return nil, &TransportError{Verb: req.Verb(), Path: req.Path(), Err: err}
	}

	body := resp.Body
	if c.decompress {
		body, err = decodeBody(resp)
		if err != nil {
			resp.Body.Close()
			return nil, &TransportError{Verb: req.Verb(), Path: req.Path(), Err: err}
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// decodeBody wraps the body of resp according to its Content-Encoding.
// Decoded responses lose their Content-Encoding and Content-Length headers.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "":
		return resp.Body, nil
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		stripEncoding(resp)
		return &decodedBody{Reader: zr, close: func() error {
			zr.Close()
			return resp.Body.Close()
		}}, nil
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd body: %w", err)
		}
		stripEncoding(resp)
		return &decodedBody{Reader: zr, close: func() error {
			zr.Close()
			return resp.Body.Close()
		}}, nil
	default:
		return resp.Body, nil
	}
}

func stripEncoding(resp *http.Response) {
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
}

type decodedBody struct {
	io.Reader
	close func() error
}

func (b *decodedBody) Close() error { return b.close() }
