package api

import (
	"errors"
	"net/http"

	"github.com/steemit/hivelens/internal/lookup"
)

// statusForLookupError maps orchestrator failures onto transport codes
func statusForLookupError(err error) int {
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lookup.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		var pErr *lookup.ProviderError
		if errors.As(err, &pErr) {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	}
}
