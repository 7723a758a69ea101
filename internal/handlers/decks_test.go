package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/EthanLe-hub/FounderHubAI/internal/store"
)

func newTestDeckHandler(t *testing.T) *DeckStoreHandler {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "user_data.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewDeckStoreHandler(s)
}

func getPath(t *testing.T, h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestSaveSlidesThenGetSlides(t *testing.T) {
	h := newTestDeckHandler(t)

	slides := json.RawMessage(`[{"title":"The Problem","content":"offices lack coffee"}]`)
	rr := postJSON(t, h.SaveSlides, "/save-slides", saveSlidesRequest{
		UserID: "u1",
		Slides: slides,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rr.Code, rr.Body.String())
	}
	var saved map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}
	if saved["status"] != "ok" {
		t.Errorf("status = %q", saved["status"])
	}

	rr = getPath(t, h.GetSlides, "/get-slides?userId=u1")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	var got getSlidesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	var want, have []map[string]string
	if err := json.Unmarshal(slides, &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(got.Slides, &have); err != nil {
		t.Fatal(err)
	}
	if len(have) != 1 || have[0]["title"] != want[0]["title"] || have[0]["content"] != want[0]["content"] {
		t.Errorf("round trip mismatch: %s", got.Slides)
	}
}

func TestGetSlides_UnknownUserReturnsEmptyList(t *testing.T) {
	h := newTestDeckHandler(t)

	rr := getPath(t, h.GetSlides, "/get-slides?userId=nobody")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var got getSlidesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if string(got.Slides) != "[]" {
		t.Errorf("slides = %s, want []", got.Slides)
	}
}

func TestSaveSlides_MissingUserIDUsesDefault(t *testing.T) {
	h := newTestDeckHandler(t)

	rr := postJSON(t, h.SaveSlides, "/save-slides", saveSlidesRequest{
		Slides: json.RawMessage(`[{"title":"Team","content":"founders"}]`),
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("save status = %d", rr.Code)
	}

	rr = getPath(t, h.GetSlides, "/get-slides")
	var got getSlidesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if string(got.Slides) == "[]" {
		t.Error("expected slides saved under the default user")
	}
}

func TestDashboardStats(t *testing.T) {
	h := newTestDeckHandler(t)

	// No saved deck: all counters zero.
	rr := getPath(t, h.DashboardStats, "/dashboard-stats?userId=u1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var stats dashboardStatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.DecksCreated != 0 {
		t.Errorf("decksCreated = %d, want 0", stats.DecksCreated)
	}

	postJSON(t, h.SaveSlides, "/save-slides", saveSlidesRequest{
		UserID: "u1",
		Slides: json.RawMessage(`[{"title":"Traction","content":"10k users"}]`),
	})

	rr = getPath(t, h.DashboardStats, "/dashboard-stats?userId=u1")
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.DecksCreated != 1 {
		t.Errorf("decksCreated = %d, want 1 after save", stats.DecksCreated)
	}
	if stats.LegalDocsGenerated != 0 || stats.ResearchReports != 0 {
		t.Errorf("counters = %d/%d, want 0/0", stats.LegalDocsGenerated, stats.ResearchReports)
	}
}
