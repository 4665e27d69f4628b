package rentalapi

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries the upstream API's field→message map from a 422
// response. Field names are preserved verbatim so the UI can highlight the
// offending inputs.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "booking rejected: validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "booking rejected: " + strings.Join(parts, "; ")
}

// AuthRequiredError signals that the stored credential was rejected. The
// credential has already been invalidated; Redirect tells the client where to
// re-authenticate.
type AuthRequiredError struct {
	Redirect string
}

func (e *AuthRequiredError) Error() string {
	return "authentication required"
}

// APIError is any other upstream failure, reduced to one human-readable
// message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("rental API request failed with status %d", e.Status)
}
