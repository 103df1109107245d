package converter

import (
	"fmt"
	"io"
	"net/url"

	"github.com/broady/restahead"
	"github.com/gorilla/schema"
)

// FormConverter encodes and decodes application/x-www-form-urlencoded bodies
// into structs. Fields are named by their `form` tag.
type FormConverter struct {
	encoder *schema.Encoder
	decoder *schema.Decoder
}

// Form returns a converter for URL-encoded form bodies. Unknown keys are
// ignored when decoding.
func Form() *FormConverter {
	enc := schema.NewEncoder()
	enc.SetAliasTag("form")
	dec := schema.NewDecoder()
	dec.SetAliasTag("form")
	dec.IgnoreUnknownKeys(true)
	return &FormConverter{encoder: enc, decoder: dec}
}

func (c *FormConverter) Serialize(v any) ([]byte, error) {
	values := url.Values{}
	if err := c.encoder.Encode(v, values); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	return []byte(values.Encode()), nil
}

func (c *FormConverter) Deserialize(r *restahead.Response, target any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read form: %w", err)
	}
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	// schema wants a pointer to the struct itself.
	dst, err := structPointer(target)
	if err != nil {
		return err
	}
	if err := c.decoder.Decode(dst, values); err != nil {
		return fmt.Errorf("decode form: %w", err)
	}
	return nil
}
