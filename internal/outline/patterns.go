package outline

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Patterns holds the rule tables that drive fragment classification. Each
// list is a set of regular expressions; matching is unanchored, so patterns
// that must cover a whole line carry their own ^ and $. A nil list falls
// back to the built-in defaults, which makes the zero value usable.
//
// Keeping these as data rather than code means deployments can localize or
// extend them (extra TOC phrasings, site-specific footer text) from a YAML
// file without a rebuild.
type Patterns struct {
	// TableIndicators mark a fragment as table content on their own:
	// column labels, bare dotted numbers, dates, revision markers.
	TableIndicators []string `yaml:"table_indicators"`

	// TableHeaderWords are column-header words that, found on a nearby
	// fragment of the same page, pull the current fragment into a table
	// region.
	TableHeaderWords []string `yaml:"table_header_words"`

	// TableHeaderTerms are plain substrings counted across a window of
	// same-page fragments to recognize tabular layouts.
	TableHeaderTerms []string `yaml:"table_header_terms"`

	// HeaderFooter match running headers and footers: page numbers,
	// chapter marks, copyright lines, document IDs, embedded dates.
	HeaderFooter []string `yaml:"header_footer"`

	// VersionOrDate match version strings and date lines.
	VersionOrDate []string `yaml:"version_or_date"`

	// TOCHeadings match table-of-contents section headings.
	TOCHeadings []string `yaml:"toc_headings"`

	// TOCContent match entries inside a table of contents: bare numbers,
	// dotted section numbers, leader dots, lines ending in a page number.
	// Unlike the other sets these are applied case-sensitively.
	TOCContent []string `yaml:"toc_content"`
}

// DefaultPatterns returns the built-in rule tables.
func DefaultPatterns() Patterns {
	return Patterns{
		TableIndicators: []string{
			`^(version|date|remarks|identifier|reference|days|syllabus)$`,
			`^\d+\.\d+$`,
			`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`,
			`^v?\d+\.\d+(\.\d+)?$`,
			`^rev\s+\d+$`,
			`^revision\s+\d+$`,
		},
		TableHeaderWords: []string{
			`^(version|date|remarks|identifier|reference)$`,
		},
		TableHeaderTerms: []string{"version", "date", "remarks"},
		HeaderFooter: []string{
			`page\s+\d+`,
			`^\d+$`,
			`chapter\s+\d+`,
			`©\s*\d{4}`,
			`confidential`,
			`document\s+id`,
			`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`,
		},
		VersionOrDate: []string{
			`^v\d+\.\d+`,
			`^version\s+\d+`,
			`^rev\s+\d+`,
			`^\d+\.\d+\.\d+`,
			`^date:`,
			`^created:`,
			`^updated:`,
		},
		TOCHeadings: []string{
			`table\s+of\s+contents`,
			`contents`,
			`index`,
			`table\s+des\s+matières`,
			`sommaire`,
		},
		TOCContent: []string{
			`^\d+\.?\s*$`,
			`^\d+\.\d+`,
			`\.\.\.\.\.`,
			`^.+\s+\d+$`,
		},
	}
}

// LoadPatterns reads pattern overrides from a YAML file. Keys absent from
// the file keep their defaults; a key set to an empty list disables that
// rule set.
func LoadPatterns(path string) (Patterns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Patterns{}, fmt.Errorf("read patterns file: %w", err)
	}
	var p Patterns
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Patterns{}, fmt.Errorf("parse patterns file: %w", err)
	}
	return p, nil
}

func (p Patterns) withDefaults() Patterns {
	d := DefaultPatterns()
	if p.TableIndicators == nil {
		p.TableIndicators = d.TableIndicators
	}
	if p.TableHeaderWords == nil {
		p.TableHeaderWords = d.TableHeaderWords
	}
	if p.TableHeaderTerms == nil {
		p.TableHeaderTerms = d.TableHeaderTerms
	}
	if p.HeaderFooter == nil {
		p.HeaderFooter = d.HeaderFooter
	}
	if p.VersionOrDate == nil {
		p.VersionOrDate = d.VersionOrDate
	}
	if p.TOCHeadings == nil {
		p.TOCHeadings = d.TOCHeadings
	}
	if p.TOCContent == nil {
		p.TOCContent = d.TOCContent
	}
	return p
}

// ruleSet is the compiled form of Patterns.
type ruleSet struct {
	tableIndicators  []*regexp.Regexp
	tableHeaderWords []*regexp.Regexp
	tableHeaderTerms []string
	headerFooter     []*regexp.Regexp
	versionOrDate    []*regexp.Regexp
	tocHeadings      []*regexp.Regexp
	tocContent       []*regexp.Regexp
}

func (p Patterns) compile() (*ruleSet, error) {
	p = p.withDefaults()
	rs := &ruleSet{tableHeaderTerms: p.TableHeaderTerms}

	sets := []struct {
		name     string
		patterns []string
		dst      *[]*regexp.Regexp
	}{
		{"table_indicators", p.TableIndicators, &rs.tableIndicators},
		{"table_header_words", p.TableHeaderWords, &rs.tableHeaderWords},
		{"header_footer", p.HeaderFooter, &rs.headerFooter},
		{"version_or_date", p.VersionOrDate, &rs.versionOrDate},
		{"toc_headings", p.TOCHeadings, &rs.tocHeadings},
		{"toc_content", p.TOCContent, &rs.tocContent},
	}
	for _, set := range sets {
		compiled := make([]*regexp.Regexp, 0, len(set.patterns))
		for _, pat := range set.patterns {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("%s: compile %q: %w", set.name, pat, err)
			}
			compiled = append(compiled, re)
		}
		*set.dst = compiled
	}
	return rs, nil
}

func matchAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
