// Package outline infers document structure from flat text fragments. Given
// a page-ordered sequence of lines with font size and weight, it derives the
// document title and a two-level heading outline, filtering out running
// headers, footers, tables, and table-of-contents entries along the way.
package outline

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
)

const (
	// DefaultBodyFontSize is the body size assumed when profiling finds
	// no usable text.
	DefaultBodyFontSize = 12.0

	// fallbackTitleFontSize caps heading sizes when no title was found.
	fallbackTitleFontSize = 16.0

	// DefaultTitle is emitted when no fragment qualifies as a title.
	DefaultTitle = "Untitled Document"
)

// Headings whose normalized text appears on this list are deduplicated
// across the whole document, not just per page.
var genericHeadings = map[string]bool{
	"overview":     true,
	"introduction": true,
	"summary":      true,
}

// Config controls engine construction.
type Config struct {
	// Patterns supplies the rule tables. The zero value uses the
	// built-in defaults.
	Patterns Patterns
}

// Engine derives titles and outlines from fragment sequences. An Engine is
// immutable after construction and safe for concurrent use; all
// per-document state lives inside each Analyze call.
type Engine struct {
	rules *ruleSet
}

// New compiles the configured pattern tables into an Engine.
func New(cfg Config) (*Engine, error) {
	rules, err := cfg.Patterns.compile()
	if err != nil {
		return nil, err
	}
	return &Engine{rules: rules}, nil
}

// analysis is the per-document state for one Analyze call.
type analysis struct {
	eng       *Engine
	tables    map[int]bool
	bodySize  float64
	title     *fragment.Fragment
	titlePage int
	seen      map[string]bool
	inTOC     bool

	outline []Entry
	body    []Paragraph
}

// Analyze runs the full structure inference over one document. Fragments
// must be in reading order; the input is not modified. Two calls with equal
// input produce equal results.
func (e *Engine) Analyze(frags []fragment.Fragment) *Result {
	a := &analysis{
		eng:     e,
		seen:    make(map[string]bool),
		outline: make([]Entry, 0),
	}

	a.tables = e.detectTableRegions(frags)
	fonts, bodySize := e.profileFonts(frags, a.tables)
	a.bodySize = bodySize
	a.title = a.selectTitle(frags)
	if a.title != nil {
		a.titlePage = a.title.Page
	}

	a.run(frags)

	return &Result{
		Document:     Document{Title: a.titleText(), Outline: a.outline},
		Body:         a.body,
		BodyFontSize: a.bodySize,
		Fonts:        fonts,
	}
}

// run is the final pass: one sweep over the fragments that skips noise,
// tracks whether we are inside a table of contents, and collects accepted
// headings and body paragraphs in order.
func (a *analysis) run(frags []fragment.Fragment) {
	for i, f := range frags {
		text := strings.TrimSpace(f.Text)
		page := f.Page

		if text == "" || a.tables[i] {
			continue
		}
		if a.eng.isBoilerplate(f) {
			continue
		}
		// The title fragment itself never re-appears as a heading.
		if a.title != nil && text == a.title.Text && page == a.title.Page {
			continue
		}

		// A TOC heading flips the machine into TOC mode. The heading
		// itself may still enter the outline, but never the body.
		if a.eng.isTOCHeading(f) {
			a.inTOC = true
			if level := a.classifyLevel(f); level != "" && a.acceptHeading(text, page) {
				a.outline = append(a.outline, Entry{Level: level, Text: text, Page: page})
			}
			continue
		}

		// In TOC mode, entry-shaped lines are dropped. The first
		// fragment that classifies as a real heading ends the TOC and
		// is processed normally below.
		if a.inTOC {
			if a.eng.isTOCContent(f) {
				continue
			}
			if a.classifyLevel(f) == "" {
				continue
			}
			a.inTOC = false
		}

		level := ""
		if a.titlePage == 0 || page != a.titlePage {
			level = a.classifyLevel(f)
		}
		if level != "" && a.acceptHeading(text, page) {
			a.outline = append(a.outline, Entry{Level: level, Text: text, Page: page})
		}

		a.body = append(a.body, Paragraph{Text: text, Page: page, Type: "paragraph"})
	}
}

// acceptHeading applies duplicate suppression. Generic section names are
// admitted once per document; everything else is keyed by text and page.
// Acceptance records the heading, so the first caller wins.
func (a *analysis) acceptHeading(text string, page int) bool {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if genericHeadings[normalized] {
		if a.seen[normalized] {
			return false
		}
		a.seen[normalized] = true
	}
	key := normalized + "_" + strconv.Itoa(page)
	if a.seen[key] {
		return false
	}
	a.seen[key] = true
	return true
}
