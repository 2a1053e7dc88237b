package parse

import "fmt"

// Kind classifies a parse failure.
type Kind int

const (
	KindMalformed Kind = iota
	KindUnsupportedFormat
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindUnsupportedFormat:
		return "unsupported format"
	default:
		return "unknown"
	}
}

// Error is a classified parse failure for a single document.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
