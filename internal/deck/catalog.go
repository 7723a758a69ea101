// Package deck holds the pitch-deck domain: the standard slide structure,
// the reconciler that guarantees it, the prompt builders for every
// generation operation, and the parsers for collaborator replies.
package deck

import "strings"

// StandardSlides is the fixed structure of a complete pitch deck, in
// presentation order. Generation, title validation, and reconciliation
// all work against this list.
var StandardSlides = []string{
	"The Problem",
	"Our Solution",
	"Product Demo",
	"Market Opportunity",
	"Traction",
	"Customer Love",
	"Competitive Landscape",
	"Business Model",
	"Financial Projections",
	"Go-to-Market Strategy",
	"Team",
	"Funding Ask",
	"Thank You",
}

// IsStandardSlide reports whether title is one of the standard slide
// titles. Comparison is exact.
func IsStandardSlide(title string) bool {
	for _, s := range StandardSlides {
		if s == title {
			return true
		}
	}
	return false
}

// StandardSlideList returns the standard titles joined for error messages.
func StandardSlideList() string {
	return strings.Join(StandardSlides, ", ")
}

// Slide is one titled slide as the frontend edits and exports it.
type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
