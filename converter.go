package restahead

// Converter turns values into request bodies and response bodies into values.
// Implementations live in the converter package.
type Converter interface {
	// Serialize encodes v.
	Serialize(v any) ([]byte, error)

	// Deserialize decodes the body of r into target, which is a non-nil pointer.
	// It reads r.Body but does not close it.
	Deserialize(r *Response, target any) error
}
