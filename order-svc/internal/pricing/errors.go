package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBelowMinimum = errors.New("below minimum order amount")

	// ErrCatalogLookupFailed is recovered inside the pricer and never returned.
	ErrCatalogLookupFailed = errors.New("catalog lookup failed")
)

// RejectionError is a client-visible refusal of a cart. Reason is shown to
// the client verbatim; Kind is one of the sentinel errors above.
type RejectionError struct {
	Kind   error
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.Kind
}

func invalid(format string, args ...any) error {
	return &RejectionError{Kind: ErrInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

// Reason returns the client-facing reason of a rejection, or "" when err is
// not a rejection.
func Reason(err error) string {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}
