package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/deck"
	"github.com/EthanLe-hub/FounderHubAI/pkg/logging"
)

// Renderer renders an ordered deck into one downloadable document.
type Renderer interface {
	Render(slides []deck.Slide) ([]byte, error)
}

// ExportHandler holds the document renderers. A nil renderer means that
// export format is unavailable; requests for it fail with a JSON error
// instead of a panic.
type ExportHandler struct {
	PDF Renderer
	PPT Renderer
}

func NewExportHandler(pdf, ppt Renderer) *ExportHandler {
	return &ExportHandler{PDF: pdf, PPT: ppt}
}

type exportRequest struct {
	Slides []deck.Slide `json:"slides"`
}

// ExportPDF handles POST /export-pdf.
func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.PDF, "application/pdf", "pitch_deck.pdf", "PDF")
}

// ExportPPT handles POST /export-ppt.
func (h *ExportHandler) ExportPPT(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.PPT,
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"pitch_deck.pptx", "PPT")
}

func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request, renderer Renderer, contentType, filename, kind string) {
	logger := logging.L(r.Context())

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if renderer == nil {
		logger.Error("export_unavailable", zap.String("format", kind))
		respondError(w, http.StatusInternalServerError, kind+" export is not available on this server.")
		return
	}

	out, err := renderer.Render(req.Slides)
	if err != nil {
		logger.Error("export_render_error", zap.String("format", kind), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("deck_exported",
		zap.String("format", kind),
		zap.Int("slides", len(req.Slides)),
		zap.Int("bytes", len(out)),
	)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	_, _ = w.Write(out)
}
