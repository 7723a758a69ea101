package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/cache"
	"github.com/EthanLe-hub/FounderHubAI/internal/deck"
	"github.com/EthanLe-hub/FounderHubAI/internal/llm"
	"github.com/EthanLe-hub/FounderHubAI/internal/metrics"
	"github.com/EthanLe-hub/FounderHubAI/pkg/logging"
)

// GenerateHandler holds dependencies for the AI generation endpoints.
type GenerateHandler struct {
	Cache     cache.Cache
	CacheTTL  time.Duration
	VersionID string
	LLM       llm.Client
	Model     string
}

func NewGenerateHandler(c cache.Cache, ttl time.Duration, versionID string, client llm.Client, model string) *GenerateHandler {
	return &GenerateHandler{
		Cache:     c,
		CacheTTL:  ttl,
		VersionID: versionID,
		LLM:       client,
		Model:     model,
	}
}

type slideRequest struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

type slidesResponse struct {
	Slides []string `json:"slides"`
}

// GenerateSlides handles POST /generate-slides: one full deck per
// problem/solution pair, answered from the response cache when the exact
// same pair was generated within the TTL.
func (h *GenerateHandler) GenerateSlides(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req slideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		metrics.GenerationRequestsTotal.WithLabelValues("generate-slides", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	key := cache.BuildDeckCacheKey(req.Problem, req.Solution, h.Model, h.VersionID)
	cacheKey := key.String()

	lookupStart := time.Now()
	cached, hit, cacheErr := h.Cache.Get(ctx, cacheKey)
	lookupLatency := time.Since(lookupStart)
	if cacheErr != nil {
		// Cache is best-effort; log and treat as miss.
		logger.Warn("deck_cache_get_error", zap.Error(cacheErr))
	}
	if hit {
		if !json.Valid(cached) {
			logger.Warn("deck_cache_corrupt_entry", zap.String("hash_key", key.Hash))
		} else {
			logger.Info("deck_generation",
				zap.String("hash_key", key.Hash),
				zap.String("model_id", key.ModelID),
				zap.String("version_id", key.VersionID),
				zap.Bool("cache_hit", true),
				zap.Duration("cache_lookup_latency_ms", lookupLatency),
				zap.Duration("total_latency_ms", time.Since(start)),
			)
			metrics.GenerationRequestsTotal.WithLabelValues("generate-slides", "cache_hit").Inc()
			respondRaw(w, http.StatusOK, cached)
			return
		}
	}

	llmStart := time.Now()
	resp, err := h.LLM.ChatCompletion(ctx, &llm.ChatRequest{
		Model: h.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: deck.DeckSystemPrompt},
			{Role: llm.RoleUser, Content: deck.DeckPrompt(req.Problem, req.Solution)},
		},
		MaxTokens: deck.DeckMaxTokens,
	})
	if err != nil {
		respondLLMError(w, logger, "generate-slides", err)
		return
	}
	llmLatency := time.Since(llmStart)

	out := slidesResponse{Slides: deck.Reconcile(llm.CompletionText(resp))}

	body, err := json.Marshal(out)
	if err != nil {
		logger.Warn("marshal_response_error", zap.Error(err))
	} else if err := h.Cache.Set(ctx, cacheKey, body, h.CacheTTL); err != nil {
		logger.Warn("deck_cache_set_error", zap.Error(err))
	}

	logger.Info("deck_generation",
		zap.String("hash_key", key.Hash),
		zap.String("model_id", key.ModelID),
		zap.String("version_id", key.VersionID),
		zap.Bool("cache_hit", false),
		zap.Duration("cache_lookup_latency_ms", lookupLatency),
		zap.Duration("llm_latency_ms", llmLatency),
		zap.Duration("total_latency_ms", time.Since(start)),
	)
	metrics.GenerationRequestsTotal.WithLabelValues("generate-slides", "generated").Inc()
	respondJSON(w, http.StatusOK, out)
}

type slideContentRequest struct {
	Problem        string `json:"problem"`
	Solution       string `json:"solution"`
	SlideTitle     string `json:"slide_title"`
	CurrentContent string `json:"current_content"`
	Mode           string `json:"mode"`
}

// GenerateSlideContent handles POST /generate-slide-content: content for
// one slide, with optional optimize/improve modes.
func (h *GenerateHandler) GenerateSlideContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req slideContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		metrics.GenerationRequestsTotal.WithLabelValues("generate-slide-content", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !deck.IsStandardSlide(req.SlideTitle) {
		metrics.GenerationRequestsTotal.WithLabelValues("generate-slide-content", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "Invalid slide title. Must be one of: "+deck.StandardSlideList())
		return
	}

	resp, err := h.LLM.ChatCompletion(ctx, &llm.ChatRequest{
		Model: h.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: deck.SlideContentSystemPrompt},
			{Role: llm.RoleUser, Content: deck.SlideContentPrompt(req.Problem, req.Solution, req.SlideTitle, req.CurrentContent, req.Mode)},
		},
		MaxTokens: deck.SlideContentMaxTokens,
	})
	if err != nil {
		respondLLMError(w, logger, "generate-slide-content", err)
		return
	}

	logger.Info("slide_content_generated",
		zap.String("slide_title", req.SlideTitle),
		zap.String("mode", req.Mode),
		zap.Duration("total_latency_ms", time.Since(start)),
	)
	metrics.GenerationRequestsTotal.WithLabelValues("generate-slide-content", "generated").Inc()
	respondJSON(w, http.StatusOK, map[string]string{"content": llm.CompletionText(resp)})
}

// GenerateDesignSuggestions handles POST /generate-design-suggestions.
func (h *GenerateHandler) GenerateDesignSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req slideContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		metrics.GenerationRequestsTotal.WithLabelValues("generate-design-suggestions", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !deck.IsStandardSlide(req.SlideTitle) {
		metrics.GenerationRequestsTotal.WithLabelValues("generate-design-suggestions", "invalid_input").Inc()
		respondError(w, http.StatusBadRequest, "Invalid slide title. Must be one of: "+deck.StandardSlideList())
		return
	}

	resp, err := h.LLM.ChatCompletion(ctx, &llm.ChatRequest{
		Model: h.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: deck.DesignSystemPrompt},
			{Role: llm.RoleUser, Content: deck.DesignSuggestionsPrompt(req.Problem, req.Solution, req.SlideTitle, req.CurrentContent)},
		},
		MaxTokens: deck.DesignMaxTokens,
	})
	if err != nil {
		respondLLMError(w, logger, "generate-design-suggestions", err)
		return
	}

	logger.Info("design_suggestions_generated",
		zap.String("slide_title", req.SlideTitle),
		zap.Duration("total_latency_ms", time.Since(start)),
	)
	metrics.GenerationRequestsTotal.WithLabelValues("generate-design-suggestions", "generated").Inc()
	respondJSON(w, http.StatusOK, map[string]string{"suggestions": llm.CompletionText(resp)})
}
