package restahead

// Header is a single header entry of a [Request].
type Header struct {
	Name  string
	Value string
}

// Request is a single HTTP call described by a verb, a path relative to the
// client's base URL, and an ordered list of headers.
//
// A Request is owned by the call that built it and must not be shared between
// goroutines while it is being executed.
type Request struct {
	verb    Verb
	path    string
	headers []Header
}

// NewRequest creates a request for the given verb and path.
func NewRequest(verb Verb, path string) *Request {
	return &Request{verb: verb, path: path}
}

// Verb returns the HTTP method of the request.
func (r *Request) Verb() Verb { return r.verb }

// Path returns the request path.
func (r *Request) Path() string { return r.path }

// AddHeader appends a header entry. Entries with the same name are kept, in the
// order they were added.
func (r *Request) AddHeader(name, value string) {
	r.headers = append(r.headers, Header{Name: name, Value: value})
}

// Headers returns a copy of the header entries in insertion order.
func (r *Request) Headers() []Header {
	out := make([]Header, len(r.headers))
	copy(out, r.headers)
	return out
}

// HeaderValues returns the values added for name, in insertion order.
// The comparison is exact; callers canonicalize names themselves.
func (r *Request) HeaderValues(name string) []string {
	var values []string
	for _, h := range r.headers {
		if h.Name == name {
			values = append(values, h.Value)
		}
	}
	return values
}

// HasHeader reports whether at least one entry named name was added.
func (r *Request) HasHeader(name string) bool {
	for _, h := range r.headers {
		if h.Name == name {
			return true
		}
	}
	return false
}
