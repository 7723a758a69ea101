package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/llm"
	"github.com/EthanLe-hub/FounderHubAI/internal/metrics"
)

// errorBody is the error shape the frontend expects on every failure.
type errorBody struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondRaw writes pre-encoded JSON verbatim (cache hits).
func respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorBody{Detail: detail})
}

// respondLLMError maps a collaborator failure onto the API contract:
// upstream rate limiting becomes 429, everything else 500.
func respondLLMError(w http.ResponseWriter, logger *zap.Logger, endpoint string, err error) {
	var apiErr *llm.APIError
	switch {
	case llm.IsRateLimited(err):
		metrics.GenerationRequestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
		logger.Warn("upstream_rate_limited", zap.String("endpoint", endpoint), zap.Error(err))
		respondError(w, http.StatusTooManyRequests, "API rate limit exceeded. Please try again later.")
	case errors.Is(err, llm.ErrNoContent):
		metrics.GenerationRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		logger.Error("upstream_no_content", zap.String("endpoint", endpoint), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "No response content received from OpenAI")
	case errors.As(err, &apiErr):
		metrics.GenerationRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		logger.Error("upstream_error", zap.String("endpoint", endpoint), zap.Int("status", apiErr.StatusCode), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "OpenAI API error: "+apiErr.Message)
	default:
		metrics.GenerationRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		logger.Error("generation_error", zap.String("endpoint", endpoint), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
	}
}
