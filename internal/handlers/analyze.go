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

type analyzeRequest struct {
	Slides []deck.Slide `json:"slides"`
}

// AnalyzePitchDeck handles POST /analyze-pitch-deck: a whole-deck review
// with a 0-100 score and per-category feedback. Missing sections in the
// reviewer's reply fall back to neutral defaults.
func (h *GenerateHandler) AnalyzePitchDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		metrics.GenerationRequestsTotal.WithLabelValues("analyze-pitch-deck", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	resp, err := h.LLM.ChatCompletion(ctx, &llm.ChatRequest{
		Model: h.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: deck.AnalysisSystemPrompt},
			{Role: llm.RoleUser, Content: deck.AnalysisPrompt(req.Slides)},
		},
		MaxTokens: deck.AnalysisMaxTokens,
	})
	if err != nil {
		respondLLMError(w, logger, "analyze-pitch-deck", err)
		return
	}

	analysis := deck.ParseAnalysis(llm.CompletionText(resp))

	logger.Info("deck_analyzed",
		zap.Int("slides", len(req.Slides)),
		zap.Float64("score", analysis.Score),
		zap.Duration("total_latency_ms", time.Since(start)),
	)
	metrics.GenerationRequestsTotal.WithLabelValues("analyze-pitch-deck", "generated").Inc()
	respondJSON(w, http.StatusOK, analysis)
}
