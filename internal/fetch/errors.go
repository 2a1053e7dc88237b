package fetch

import "fmt"

// Kind classifies a fetch failure.
type Kind int

const (
	KindTimeout Kind = iota
	KindConnectionRefused
	KindHTTPStatus
	KindUnreachable
)

// String returns the short name used in status records and logs.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnectionRefused:
		return "connection refused"
	case KindHTTPStatus:
		return "http status"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Error is a classified fetch failure for a single URL.
type Error struct {
	Kind   Kind
	URL    string
	Status int // HTTP status code when Kind is KindHTTPStatus
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
