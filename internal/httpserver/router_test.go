package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap/zaptest"

	"github.com/EthanLe-hub/FounderHubAI/internal/cache"
	"github.com/EthanLe-hub/FounderHubAI/internal/export"
	"github.com/EthanLe-hub/FounderHubAI/internal/handlers"
	"github.com/EthanLe-hub/FounderHubAI/internal/llm"
	"github.com/EthanLe-hub/FounderHubAI/internal/store"
)

type stubLLM struct{}

func (stubLLM) ChatCompletion(context.Context, *llm.ChatRequest) (*llm.ChatResponse, error) {
	return &llm.ChatResponse{
		Choices: []llm.ChatChoice{{Message: llm.ChatMessage{Role: llm.RoleAssistant, Content: "ok"}}},
	}, nil
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	mem := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { mem.Close() })

	s, err := store.Open(filepath.Join(t.TempDir(), "user_data.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	r := chi.NewRouter()
	SetupRouter(r, zaptest.NewLogger(t), Options{AllowedOrigin: "http://localhost:3000"},
		handlers.NewGenerateHandler(mem, time.Minute, "vtest", stubLLM{}, "gpt-4"),
		handlers.NewExportHandler(export.PDFRenderer{}, export.PPTRenderer{}),
		handlers.NewDeckStoreHandler(s),
	)
	return r
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Body.String() != "ok" {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/generate-slides", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Errorf("allow methods = %q", got)
	}
}

func TestCORS_RejectsOtherOrigin(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/generate-slides", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow origin = %q, want empty for unknown origin", got)
	}
}

func TestRouteWiring(t *testing.T) {
	r := newTestRouter(t)

	// Each generation route responds through the shared stub collaborator.
	for _, path := range []string{
		"/generate-slides",
		"/generate-slide-content",
		"/generate-design-suggestions",
		"/generate-suggestion",
		"/generate-visual-data",
		"/analyze-pitch-deck",
	} {
		body := `{"problem":"p","solution":"s","slide_title":"Team","slides":[]}`
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: status = %d: %s", path, rr.Code, rr.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/get-slides?userId=u1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("/get-slides: status = %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("/metrics: status = %d", rr.Code)
	}
}
