package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/deck"
	"github.com/EthanLe-hub/FounderHubAI/internal/llm"
	"github.com/EthanLe-hub/FounderHubAI/internal/metrics"
	"github.com/EthanLe-hub/FounderHubAI/pkg/logging"
)

type suggestionRequest struct {
	Type       string `json:"type"`
	SlideTitle string `json:"slide_title"`
	Content    string `json:"content"`
	Design     string `json:"design"`
}

// GenerateSuggestion handles POST /generate-suggestion: a single
// actionable improvement for one slide's content or design. Type defaults
// to "Content".
func (h *GenerateHandler) GenerateSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		metrics.GenerationRequestsTotal.WithLabelValues("generate-suggestion", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Type == "" {
		req.Type = "Content"
	}

	resp, err := h.LLM.ChatCompletion(ctx, &llm.ChatRequest{
		Model: h.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: deck.SuggestionSystemPrompt},
			{Role: llm.RoleUser, Content: deck.SuggestionPrompt(req.Type, req.SlideTitle, req.Content, req.Design)},
		},
		MaxTokens: deck.SuggestionMaxTokens,
	})
	if err != nil {
		respondLLMError(w, logger, "generate-suggestion", err)
		return
	}

	logger.Info("suggestion_generated",
		zap.String("kind", req.Type),
		zap.String("slide_title", req.SlideTitle),
		zap.Duration("total_latency_ms", time.Since(start)),
	)
	metrics.GenerationRequestsTotal.WithLabelValues("generate-suggestion", "generated").Inc()
	respondJSON(w, http.StatusOK, map[string]string{"suggestion": llm.CompletionText(resp)})
}

type visualDataRequest struct {
	Type    string `json:"type"`
	Context string `json:"context"`
}

type visualDataResponse struct {
	Data json.RawMessage `json:"data"`
}

// GenerateVisualData handles POST /generate-visual-data: chart or table
// data for the requested visual type. Type defaults to "pie". The
// collaborator's reply passes through as JSON when valid and as a plain
// string otherwise.
func (h *GenerateHandler) GenerateVisualData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req visualDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		metrics.GenerationRequestsTotal.WithLabelValues("generate-visual-data", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Type == "" {
		req.Type = "pie"
	}

	resp, err := h.LLM.ChatCompletion(ctx, &llm.ChatRequest{
		Model: h.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: deck.VisualDataSystemPrompt},
			{Role: llm.RoleUser, Content: deck.VisualDataPrompt(req.Type, req.Context)},
		},
		MaxTokens: deck.VisualDataMaxTokens,
	})
	if err != nil {
		respondLLMError(w, logger, "generate-visual-data", err)
		return
	}

	logger.Info("visual_data_generated",
		zap.String("visual_type", req.Type),
		zap.Duration("total_latency_ms", time.Since(start)),
	)
	metrics.GenerationRequestsTotal.WithLabelValues("generate-visual-data", "generated").Inc()
	respondJSON(w, http.StatusOK, visualDataResponse{Data: deck.ParseVisualData(llm.CompletionText(resp))})
}
