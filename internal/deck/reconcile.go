package deck

import "strings"

// SplitSlides breaks generated deck text into candidate slide lines:
// one line per slide, whitespace trimmed, blanks dropped.
func SplitSlides(text string) []string {
	var slides []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			slides = append(slides, line)
		}
	}
	return slides
}

// Reconcile splits generated text into slides and guarantees every
// standard slide is represented: any standard title with no
// case-insensitive substring match among the lines is appended as a bare
// title, in standard order. Presence detection only; lines the generator
// produced are never reordered or rewritten.
func Reconcile(text string) []string {
	slides := SplitSlides(text)

	var missing []string
	for _, title := range StandardSlides {
		if !containsFold(slides, title) {
			missing = append(missing, title)
		}
	}
	return append(slides, missing...)
}

func containsFold(slides []string, title string) bool {
	t := strings.ToLower(title)
	for _, s := range slides {
		if strings.Contains(strings.ToLower(s), t) {
			return true
		}
	}
	return false
}
