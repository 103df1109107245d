package converter

import (
	"fmt"
	"mime"
	"strings"

	"github.com/broady/restahead"
)

// Negotiator picks a converter by the media type of each response.
// Serialize always uses the fallback.
type Negotiator struct {
	fallback restahead.Converter
	byType   map[string]restahead.Converter
}

// Negotiate returns a Negotiator that decodes with fallback unless the
// response media type has a registered converter.
func Negotiate(fallback restahead.Converter) *Negotiator {
	return &Negotiator{fallback: fallback, byType: make(map[string]restahead.Converter)}
}

// Register uses c for responses of the given media types, e.g. "application/yaml".
func (n *Negotiator) Register(c restahead.Converter, mediaTypes ...string) *Negotiator {
	for _, mt := range mediaTypes {
		n.byType[strings.ToLower(mt)] = c
	}
	return n
}

// Defaults registers JSON, YAML and form converters for their usual media types.
func (n *Negotiator) Defaults() *Negotiator {
	return n.
		Register(JSON(), "application/json", "text/json").
		Register(YAML(), "application/yaml", "application/x-yaml", "text/yaml").
		Register(Form(), "application/x-www-form-urlencoded")
}

func (n *Negotiator) Serialize(v any) ([]byte, error) {
	if n.fallback == nil {
		return nil, restahead.ErrNoConverter
	}
	return n.fallback.Serialize(v)
}

func (n *Negotiator) Deserialize(r *restahead.Response, target any) error {
	c := n.pick(r.ContentType())
	if c == nil {
		return fmt.Errorf("content type %q: %w", r.ContentType(), restahead.ErrNoConverter)
	}
	return c.Deserialize(r, target)
}

func (n *Negotiator) pick(contentType string) restahead.Converter {
	if contentType == "" {
		return n.fallback
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return n.fallback
	}
	if c, ok := n.byType[mt]; ok {
		return c
	}
	if strings.HasSuffix(mt, "+json") {
		if c, ok := n.byType["application/json"]; ok {
			return c
		}
	}
	return n.fallback
}
