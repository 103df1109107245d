package converter

import (
	"encoding/json"
	"fmt"

	"github.com/broady/restahead"
)

// JSONConverter encodes and decodes JSON bodies.
type JSONConverter struct {
	strict bool
}

// JSONOption configures a [JSONConverter].
type JSONOption func(*JSONConverter)

// Strict rejects objects with fields the target does not declare.
func Strict() JSONOption {
	return func(c *JSONConverter) { c.strict = true }
}

// JSON returns a converter for application/json bodies.
func JSON(opts ...JSONOption) *JSONConverter {
	c := &JSONConverter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *JSONConverter) Serialize(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}

func (c *JSONConverter) Deserialize(r *restahead.Response, target any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	if c.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
