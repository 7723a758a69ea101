package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/store"
	"github.com/EthanLe-hub/FounderHubAI/pkg/logging"
)

// DeckStoreHandler serves saved-deck persistence and dashboard stats.
type DeckStoreHandler struct {
	Store *store.UserStore
}

func NewDeckStoreHandler(s *store.UserStore) *DeckStoreHandler {
	return &DeckStoreHandler{Store: s}
}

const defaultUserID = "demo"

type saveSlidesRequest struct {
	UserID string          `json:"userId"`
	Slides json.RawMessage `json:"slides"`
}

// SaveSlides handles POST /save-slides.
func (h *DeckStoreHandler) SaveSlides(w http.ResponseWriter, r *http.Request) {
	logger := logging.L(r.Context())

	var req saveSlidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}
	if len(req.Slides) == 0 {
		req.Slides = json.RawMessage("[]")
	}

	if err := h.Store.SaveSlides(req.UserID, req.Slides); err != nil {
		logger.Error("save_slides_error", zap.String("user_id", req.UserID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("slides_saved", zap.String("user_id", req.UserID), zap.Int("bytes", len(req.Slides)))
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type getSlidesResponse struct {
	Slides json.RawMessage `json:"slides"`
}

// GetSlides handles GET /get-slides.
func (h *DeckStoreHandler) GetSlides(w http.ResponseWriter, r *http.Request) {
	logger := logging.L(r.Context())

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = defaultUserID
	}

	rec, err := h.Store.Get(userID)
	if err != nil {
		logger.Error("load_slides_error", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slides := rec.Slides
	if len(slides) == 0 {
		slides = json.RawMessage("[]")
	}
	respondJSON(w, http.StatusOK, getSlidesResponse{Slides: slides})
}

type dashboardStatsResponse struct {
	DecksCreated       int `json:"decksCreated"`
	LegalDocsGenerated int `json:"legalDocsGenerated"`
	ResearchReports    int `json:"researchReports"`
}

// DashboardStats handles GET /dashboard-stats.
func (h *DeckStoreHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	logger := logging.L(r.Context())

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = defaultUserID
	}

	rec, err := h.Store.Get(userID)
	if err != nil {
		logger.Error("dashboard_stats_error", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats := dashboardStatsResponse{
		LegalDocsGenerated: rec.LegalDocsGenerated,
		ResearchReports:    rec.ResearchReports,
	}
	if rec.HasSlides() {
		stats.DecksCreated = 1
	}
	respondJSON(w, http.StatusOK, stats)
}
