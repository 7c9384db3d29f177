package outline

import (
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// Window sizes for tabular-layout detection, in fragments on either side.
const (
	tableStructureWindow = 10
	tableNeighborWindow  = 5
)

// Thresholds for calling a window of fragments a tabular layout.
const (
	minHeaderTerms     = 2
	minShortEntries    = 3
	shortEntryMaxWords = 3
)

// detectTableRegions returns the indices of fragments that belong to
// tabular layouts, such as revision-history tables. Each fragment is judged
// independently against the unmodified input, so detection order does not
// matter.
func (e *Engine) detectTableRegions(frags []fragment.Fragment) map[int]bool {
	regions := make(map[int]bool)
	for i := range frags {
		if e.isTableFragment(frags, i) {
			regions[i] = true
		}
	}
	return regions
}

func (e *Engine) isTableFragment(frags []fragment.Fragment, i int) bool {
	text := strings.ToLower(strings.TrimSpace(frags[i].Text))
	if matchAny(e.rules.tableIndicators, text) {
		return true
	}
	return e.inTabularStructure(frags, i) || e.hasTabularNeighbor(frags, i)
}

// inTabularStructure looks at the fragments surrounding index i on the same
// page. A cluster of column-header terms together with several short
// same-size entries is read as a table body.
func (e *Engine) inTabularStructure(frags []fragment.Fragment, i int) bool {
	page := frags[i].Page
	size := frags[i].FontSize

	headerTerms := 0
	shortEntries := 0

	lo := max(0, i-tableStructureWindow)
	hi := min(len(frags)-1, i+tableStructureWindow)
	for j := lo; j <= hi; j++ {
		if frags[j].Page != page {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(frags[j].Text))
		for _, term := range e.rules.tableHeaderTerms {
			if strings.Contains(text, term) {
				headerTerms++
				break
			}
		}
		if len(strings.Fields(text)) <= shortEntryMaxWords && frags[j].FontSize == size {
			shortEntries++
		}
	}
	return headerTerms >= minHeaderTerms && shortEntries >= minShortEntries
}

// hasTabularNeighbor reports whether a same-page fragment within the
// neighbor window is a bare column-header word.
func (e *Engine) hasTabularNeighbor(frags []fragment.Fragment, i int) bool {
	lo := max(0, i-tableNeighborWindow)
	hi := min(len(frags)-1, i+tableNeighborWindow)
	for j := lo; j <= hi; j++ {
		if j == i || frags[j].Page != frags[i].Page {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(frags[j].Text))
		if matchAny(e.rules.tableHeaderWords, text) {
			return true
		}
	}
	return false
}
