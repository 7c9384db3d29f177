package outline

import (
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// Heading levels emitted by the classifier.
const (
	LevelH1 = "H1"
	LevelH2 = "H2"
)

const (
	// A heading at the body size carries at most this many words.
	maxHeadingWords = 10

	// Bold body-size text longer than this is emphasized prose.
	paragraphWordThreshold = 15
)

// isParagraphText reports whether a fragment is running body text: regular
// text at the body size, or bold body-size text that is clearly prose
// (multi-line or long).
func (a *analysis) isParagraphText(f fragment.Fragment) bool {
	if f.FontSize != a.bodySize {
		return false
	}
	if !f.Bold {
		return true
	}
	text := strings.TrimSpace(f.Text)
	return strings.Contains(text, "\n") || len(strings.Fields(text)) > paragraphWordThreshold
}

// classifyLevel assigns a heading level from font geometry, or "" when the
// fragment is not a heading. Anything at or above the title size is assumed
// to be display text rather than a section heading.
func (a *analysis) classifyLevel(f fragment.Fragment) string {
	if a.isParagraphText(f) {
		return ""
	}

	titleSize := fallbackTitleFontSize
	if a.title != nil {
		titleSize = a.title.FontSize
	}

	switch {
	case f.FontSize >= titleSize:
		return ""
	case f.FontSize > a.bodySize:
		return LevelH1
	case f.FontSize == a.bodySize && f.Bold && len(strings.Fields(f.Text)) <= maxHeadingWords:
		return LevelH2
	}
	return ""
}
