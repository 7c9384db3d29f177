package outline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docstruct/internal/fragment"
)

var (
	// Short runs of digits, whitespace, and date punctuation are page
	// numbers or dates even when no explicit pattern matches.
	numericRunRe = regexp.MustCompile(`^[\d\s\-/\.]+$`)

	// Decorative separator lines: leader dots, rules, underscores.
	separatorRunRe = regexp.MustCompile(`^[.\-_=*~]{3,}$`)
)

// isBoilerplate reports whether a fragment is page furniture rather than
// document content: running headers and footers, version or date lines,
// and decorative separators.
func (e *Engine) isBoilerplate(f fragment.Fragment) bool {
	return e.isHeaderFooter(f) || e.isVersionOrDate(f) || e.isDotsOrDashes(f)
}

func (e *Engine) isHeaderFooter(f fragment.Fragment) bool {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	if matchAny(e.rules.headerFooter, text) {
		return true
	}
	return utf8.RuneCountInString(text) <= 10 && numericRunRe.MatchString(text)
}

func (e *Engine) isVersionOrDate(f fragment.Fragment) bool {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	return matchAny(e.rules.versionOrDate, text)
}

func (e *Engine) isDotsOrDashes(f fragment.Fragment) bool {
	text := stripWhitespace(f.Text)
	return utf8.RuneCountInString(text) >= 3 && separatorRunRe.MatchString(text)
}

// isTOCHeading reports whether a fragment announces a table of contents.
func (e *Engine) isTOCHeading(f fragment.Fragment) bool {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	return matchAny(e.rules.tocHeadings, text)
}

// isTOCContent reports whether a fragment looks like a line inside a table
// of contents. Matching is case-sensitive.
func (e *Engine) isTOCContent(f fragment.Fragment) bool {
	return matchAny(e.rules.tocContent, strings.TrimSpace(f.Text))
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
