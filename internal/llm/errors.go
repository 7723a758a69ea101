package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoContent reports that the provider answered 2xx but without any
// usable completion text. Handlers fail the request instead of shaping an
// empty reply.
var ErrNoContent = errors.New("llmclient: provider returned no content")

// APIError is a non-2xx reply from the provider, preserved with its status
// code so handlers can translate upstream failure kinds.
type APIError struct {
	StatusCode int
	ErrType    string
	Message    string
}

func (e *APIError) Error() string {
	if e.ErrType != "" {
		return fmt.Sprintf("llmclient: upstream %d: %s (%s)", e.StatusCode, e.Message, e.ErrType)
	}
	return fmt.Sprintf("llmclient: upstream %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited reports whether err is (or wraps) an upstream throttling
// reply, including the case where retries were exhausted on 429s.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
