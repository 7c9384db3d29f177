// Package fragment defines the flat text-fragment model that format
// extractors produce and the outline engine consumes.
package fragment

import "math"

// DefaultFontSize is assumed when a fragment carries no size information.
const DefaultFontSize = 12.0

// Fragment is one line of text with its layout attributes. Fragments are
// ordered: page by page, top to bottom within a page.
type Fragment struct {
	Text     string  `json:"text"`
	Page     int     `json:"page"`
	FontSize float64 `json:"font_size"`
	Bold     bool    `json:"bold,omitempty"`
}

// RoundSize normalizes a font size to one decimal place. The outline engine
// compares sizes with ==, so every size entering it must pass through here.
func RoundSize(size float64) float64 {
	return math.Round(size*10) / 10
}

// Normalize fills in the input-contract defaults: page numbers start at 1,
// absent or nonsense font sizes fall back to DefaultFontSize, and the size
// is rounded for exact comparison.
func Normalize(f Fragment) Fragment {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.FontSize <= 0 {
		f.FontSize = DefaultFontSize
	}
	f.FontSize = RoundSize(f.FontSize)
	return f
}
