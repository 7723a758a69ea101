package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/handlers"
	"github.com/EthanLe-hub/FounderHubAI/internal/metrics"
	"github.com/EthanLe-hub/FounderHubAI/internal/middleware"
)

// Options carries the per-deployment knobs the router needs.
type Options struct {
	AllowedOrigin string
}

func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, opts Options,
	gen *handlers.GenerateHandler, exp *handlers.ExportHandler, decks *handlers.DeckStoreHandler) {

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	// The frontend is served from a single origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.AllowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())               // panic recovery
	r.Use(middleware.Timeout(30 * time.Second)) // covers the upstream call
	r.Use(middleware.MaxBodySize(1024 * 1024))  // 1 MB max body

	// generation
	r.Post("/generate-slides", gen.GenerateSlides)
	r.Post("/generate-slide-content", gen.GenerateSlideContent)
	r.Post("/generate-design-suggestions", gen.GenerateDesignSuggestions)
	r.Post("/generate-suggestion", gen.GenerateSuggestion)
	r.Post("/generate-visual-data", gen.GenerateVisualData)
	r.Post("/analyze-pitch-deck", gen.AnalyzePitchDeck)

	// export
	r.Post("/export-pdf", exp.ExportPDF)
	r.Post("/export-ppt", exp.ExportPPT)

	// persistence
	r.Post("/save-slides", decks.SaveSlides)
	r.Get("/get-slides", decks.GetSlides)
	r.Get("/dashboard-stats", decks.DashboardStats)

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
