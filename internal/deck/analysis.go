package deck

import (
	"regexp"
	"strconv"
	"strings"
)

// Analysis is the structured review of a whole deck.
type Analysis struct {
	Score           float64 `json:"score"`
	NarrativeFlow   string  `json:"narrative_flow"`
	VisualDesign    string  `json:"visual_design"`
	DataCredibility string  `json:"data_credibility"`
	Feedback        string  `json:"feedback"`
}

var scoreRe = regexp.MustCompile(`\d+`)

// ParseAnalysis extracts the reviewer's sections from free-form reply
// text. Blocks are delimited by the literal marker "SECTION:"; each known
// heading claims its block with the heading stripped and whitespace
// trimmed. The score is the first integer found in the Overall Score
// block. Any section the reviewer failed to produce keeps a neutral
// default.
func ParseAnalysis(text string) Analysis {
	out := Analysis{
		Score:           75.0,
		NarrativeFlow:   "No narrative flow analysis provided.",
		VisualDesign:    "No visual design analysis provided.",
		DataCredibility: "No data credibility analysis provided.",
		Feedback:        "No specific feedback provided.",
	}

	parts := strings.Split(text, "SECTION:")
	if len(parts) < 2 {
		return out
	}

	for _, section := range parts[1:] {
		section = strings.TrimSpace(section)
		switch {
		case strings.Contains(section, "Overall Score"):
			if m := scoreRe.FindString(section); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					out.Score = v
				}
			}
		case strings.Contains(section, "Narrative Flow Analysis"):
			out.NarrativeFlow = stripHeading(section, "Narrative Flow Analysis")
		case strings.Contains(section, "Visual Design Analysis"):
			out.VisualDesign = stripHeading(section, "Visual Design Analysis")
		case strings.Contains(section, "Data Credibility Analysis"):
			out.DataCredibility = stripHeading(section, "Data Credibility Analysis")
		case strings.Contains(section, "Specific Feedback and Suggestions"):
			out.Feedback = stripHeading(section, "Specific Feedback and Suggestions")
		}
	}
	return out
}

func stripHeading(section, heading string) string {
	return strings.TrimSpace(strings.ReplaceAll(section, heading, ""))
}
