package lookup

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the node has no account for the
	// requested username
	ErrNotFound = errors.New("account not found")

	// ErrTimeout is returned when the primary account fetch exceeds
	// the lookup timeout
	ErrTimeout = errors.New("account lookup timed out")
)

// ProviderError wraps any other fault from the data provider
type ProviderError struct {
	Err error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %v", e.Err)
}

// Unwrap returns the underlying provider fault
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// userMessage converts a lookup failure into the human-readable string
// exposed to the presentation layer
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Account not found"
	case errors.Is(err, ErrTimeout):
		return "Lookup timed out, please try again"
	default:
		var pErr *ProviderError
		if errors.As(err, &pErr) {
			return "Failed to fetch account data: " + pErr.Err.Error()
		}
		return err.Error()
	}
}
