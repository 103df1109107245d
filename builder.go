package restahead

// Builder assembles the transport and converter handed to a generated
// constructor.
//
// Example:
//
//	svc := restahead.Build(
//	    restahead.NewBuilder("https://httpbin.org").
//	        Converter(converter.JSON()).
//	        Intercept(middleware.Logging(nil)),
//	    api.NewHttpBinService,
//	)
type Builder struct {
	baseURL      string
	client       Client
	converter    Converter
	interceptors []Interceptor
	httpOpts     []HTTPOption
}

// NewBuilder creates a Builder for services rooted at baseURL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: baseURL}
}

// Converter sets the converter used for response bodies.
func (b *Builder) Converter(c Converter) *Builder {
	b.converter = c
	return b
}

// Intercept appends interceptors. The first one added runs first.
func (b *Builder) Intercept(interceptors ...Interceptor) *Builder {
	b.interceptors = append(b.interceptors, interceptors...)
	return b
}

// HTTPOptions configures the default [HTTPClient]. It has no effect when a
// transport is set with [Builder.Transport].
func (b *Builder) HTTPOptions(opts ...HTTPOption) *Builder {
	b.httpOpts = append(b.httpOpts, opts...)
	return b
}

// Transport replaces the default [HTTPClient].
func (b *Builder) Transport(c Client) *Builder {
	b.client = c
	return b
}

// Parts returns the intercepted client and the converter.
func (b *Builder) Parts() (Client, Converter) {
	client := b.client
	if client == nil {
		client = NewHTTPClient(b.baseURL, b.httpOpts...)
	}
	return Intercept(client, b.interceptors...), b.converter
}

// Build passes the parts of b to a generated constructor.
func Build[T any](b *Builder, newService func(Client, Converter) T) T {
	client, converter := b.Parts()
	return newService(client, converter)
}
