package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/EthanLe-hub/FounderHubAI/internal/deck"
)

const fullReview = `SECTION: Overall Score
The deck scores 88 out of 100.

SECTION: Narrative Flow Analysis
Strong arc from problem to ask.

SECTION: Visual Design Analysis
Too much text on the traction slide.

SECTION: Data Credibility Analysis
Cite the market-size source.

SECTION: Specific Feedback and Suggestions
Tighten the funding ask.`

func TestAnalyzePitchDeck(t *testing.T) {
	fakeLLM := &mockLLMClient{resp: textResponse(fullReview)}
	h, _ := newTestGenerateHandler(t, fakeLLM)

	rr := postJSON(t, h.AnalyzePitchDeck, "/analyze-pitch-deck", analyzeRequest{
		Slides: []deck.Slide{
			{Title: "The Problem", Content: "offices lack coffee"},
			{Content: "untitled slide body"},
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp deck.Analysis
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Score != 88 {
		t.Errorf("score = %v, want 88", resp.Score)
	}
	if resp.NarrativeFlow != "Strong arc from problem to ask." {
		t.Errorf("narrative_flow = %q", resp.NarrativeFlow)
	}
	if resp.VisualDesign != "Too much text on the traction slide." {
		t.Errorf("visual_design = %q", resp.VisualDesign)
	}
	if resp.DataCredibility != "Cite the market-size source." {
		t.Errorf("data_credibility = %q", resp.DataCredibility)
	}
	if resp.Feedback != "Tighten the funding ask." {
		t.Errorf("feedback = %q", resp.Feedback)
	}

	// Slides without a title go into the prompt as Untitled.
	prompt := fakeLLM.lastRequest.Messages[1].Content
	if !strings.Contains(prompt, "Slide: Untitled") {
		t.Errorf("untitled slide missing from prompt: %q", prompt)
	}
}

func TestAnalyzePitchDeck_NoMarkersFallsBackToDefaults(t *testing.T) {
	fakeLLM := &mockLLMClient{resp: textResponse("Great deck, nothing to add.")}
	h, _ := newTestGenerateHandler(t, fakeLLM)

	rr := postJSON(t, h.AnalyzePitchDeck, "/analyze-pitch-deck", analyzeRequest{
		Slides: []deck.Slide{{Title: "Team", Content: "two founders"}},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp deck.Analysis
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Score != 75.0 {
		t.Errorf("score = %v, want default 75", resp.Score)
	}
	if resp.Feedback != "No specific feedback provided." {
		t.Errorf("feedback = %q, want default", resp.Feedback)
	}
}
