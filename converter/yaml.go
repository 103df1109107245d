package converter

import (
	"errors"
	"fmt"
	"io"

	"github.com/broady/restahead"
	"gopkg.in/yaml.v3"
)

// YAMLConverter encodes and decodes YAML bodies.
type YAMLConverter struct{}

// YAML returns a converter for application/yaml bodies.
func YAML() *YAMLConverter { return &YAMLConverter{} }

func (YAMLConverter) Serialize(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

func (YAMLConverter) Deserialize(r *restahead.Response, target any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	if err := yaml.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}
