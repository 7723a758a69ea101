package deck

import (
	"fmt"
	"strings"
)

// System prompts, one per generation operation.
const (
	DeckSystemPrompt = "You are a pitch deck expert. You are given a problem statement and a solution to the problem. You are to generate content for all slides in a startup pitch deck. For each slide, provide a compelling headline and 2-3 bullet points of key information. Make the content concise, impactful, and investor-ready, ensuring the slides are engaging and can instantly grab the attention of the audience and investors."

	SlideContentSystemPrompt = "You are a pitch deck expert. Generate compelling and concise content for individual slides."

	DesignSystemPrompt = "You are a presentation design expert. Provide specific and actionable design suggestions for pitch deck slides."

	SuggestionSystemPrompt = "You are a pitch deck expert. Provide concise, actionable suggestions for improving slide content or design."

	VisualDataSystemPrompt = "You are a data visualization expert. Generate chart/table data for pitch decks."

	AnalysisSystemPrompt = "You are an expert pitch deck reviewer. Analyze the pitch deck and provide detailed feedback on narrative flow, visual design, data credibility, and overall effectiveness. Provide specific, actionable suggestions for improvement."
)

// Per-operation completion token ceilings.
const (
	DeckMaxTokens         = 2000
	SlideContentMaxTokens = 2000
	DesignMaxTokens       = 500
	SuggestionMaxTokens   = 100
	VisualDataMaxTokens   = 300
	AnalysisMaxTokens     = 2000
)

// Slide-content generation modes. Any other value (including empty) means
// generate-or-enhance depending on whether current content exists.
const (
	ModeOptimize = "optimize"
	ModeImprove  = "improve"
)

// DeckPrompt asks for content for every standard slide in one shot.
func DeckPrompt(problem, solution string) string {
	return fmt.Sprintf("Generate content for all slides in a pitch deck about: Problem: '%s', Solution: '%s'. For each slide, provide a compelling headline and 2-3 bullet points of key information. The slides should be: %s.",
		problem, solution, humanJoin(StandardSlides))
}

// SlideContentPrompt builds the instruction for (re)generating a single
// slide. The current-content clause is included only when there is
// current content to show.
func SlideContentPrompt(problem, solution, title, current, mode string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given the pitch deck titled '%s' with description: '%s',\n", problem, solution)

	switch mode {
	case ModeOptimize:
		if current != "" {
			fmt.Fprintf(&b, "and the current content of the slide '%s': '%s',\n", title, current)
		}
		b.WriteString("Please optimize this slide to be more compelling and persuasive for investors. Focus on what investors care about most: market size, traction, defensibility, and growth potential. Provide a compelling headline and 2-3 bullet points of key information.")
	case ModeImprove:
		if current != "" {
			fmt.Fprintf(&b, "and the current content of the slide '%s': '%s',\n", title, current)
		}
		b.WriteString("Please improve the messaging of this slide to be clearer, more persuasive, and more memorable. Provide a compelling headline and 2-3 bullet points of key information.")
	default:
		if current != "" {
			fmt.Fprintf(&b, "and the current content of the slide '%s': '%s',\n", title, current)
			b.WriteString("please improve and enhance this slide's content while maintaining its core message. Make it more engaging and impactful for investors. Provide a compelling headline and 2-3 bullet points of key information.")
		} else {
			fmt.Fprintf(&b, "please generate detailed content for the slide '%s'. Make it engaging and impactful for investors. Provide a compelling headline and 2-3 bullet points of key information.", title)
		}
	}
	return b.String()
}

const designPromptTemplate = `Given the pitch deck titled '%s' with description: '%s',
and the slide '%s' with content: '%s',
provide specific design suggestions to make this slide more visually appealing and effective.
Include recommendations for:
1. Layout and structure
2. Visual elements (charts, images, icons)
3. Color scheme
4. Typography
5. Data visualization (if applicable)`

// DesignSuggestionsPrompt asks for layout, visual, color, typography, and
// data-visualization recommendations for one slide.
func DesignSuggestionsPrompt(problem, solution, title, current string) string {
	return fmt.Sprintf(designPromptTemplate, problem, solution, title, current)
}

// SuggestionPrompt asks for exactly one actionable improvement. Kind
// "Content" targets the slide's content; anything else its design.
func SuggestionPrompt(kind, title, content, design string) string {
	if kind == "Content" {
		return fmt.Sprintf("Given the slide titled '%s' with content: '%s', suggest a single, actionable improvement to the slide's content for a startup pitch deck. Respond with only the suggestion.", title, content)
	}
	return fmt.Sprintf("Given the slide titled '%s' with design notes: '%s', suggest a single, actionable improvement to the slide's design (layout, visuals, colors, etc.) for a startup pitch deck. Respond with only the suggestion.", title, design)
}

// VisualDataPrompt asks for raw JSON chart or table data.
func VisualDataPrompt(visualType, contextText string) string {
	return fmt.Sprintf("Generate JSON data for a %s chart for a startup pitch deck. Context: %s.\nFor pie/bar/line, use a list of objects with 'name' and 'value'. For scatter, use a list of objects with 'x' and 'y'. For table, use an object with 'columns' and 'rows'. Respond with only the JSON data.",
		visualType, contextText)
}

// AnalysisPrompt lays the deck out as titled blocks and asks for the five
// SECTION: headings the parser keys on.
func AnalysisPrompt(slides []Slide) string {
	blocks := make([]string, 0, len(slides))
	for _, s := range slides {
		title := s.Title
		if title == "" {
			title = "Untitled"
		}
		blocks = append(blocks, fmt.Sprintf("Slide: %s\nContent: %s", title, s.Content))
	}
	return fmt.Sprintf("Please analyze this pitch deck and provide feedback:\n\n%s\n\nProvide your analysis in the following distinct sections, using these exact titles, including the 'SECTION:' prefix:\n\nSECTION: Overall Score\n\nSECTION: Narrative Flow Analysis\n\nSECTION: Visual Design Analysis\n\nSECTION: Data Credibility Analysis\n\nSECTION: Specific Feedback and Suggestions",
		strings.Join(blocks, "\n\n"))
}

// humanJoin renders a list as "a, b, c, and d".
func humanJoin(items []string) string {
	if len(items) <= 1 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
