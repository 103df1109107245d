package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is returned by [ValidatePath].
var ErrInvalidPath = errors.New("invalid path")

// ValidatePath checks that a declared request path is non-empty and starts
// with "/". The path is otherwise used verbatim.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrInvalidPath, path)
	}
	return nil
}
