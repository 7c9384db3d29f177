package outline

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// FontStat aggregates how one font size is used across a document.
type FontStat struct {
	Count     int `json:"count"`
	CharTotal int `json:"char_total"`
	PageCount int `json:"page_count"`
}

// profileFonts builds per-size usage statistics and picks the dominant body
// size. Boilerplate and table-region fragments are left out so that dense
// tables cannot outvote the running text. A size's score is the characters
// set in it times the pages it appears on; the highest score wins, with
// ties going to the larger size.
func (e *Engine) profileFonts(frags []fragment.Fragment, tables map[int]bool) (map[float64]FontStat, float64) {
	type agg struct {
		count int
		chars int
		pages map[int]bool
	}
	aggs := make(map[float64]*agg)

	for i, f := range frags {
		if tables[i] || e.isBoilerplate(f) {
			continue
		}
		a := aggs[f.FontSize]
		if a == nil {
			a = &agg{pages: make(map[int]bool)}
			aggs[f.FontSize] = a
		}
		a.count++
		a.chars += utf8.RuneCountInString(strings.TrimSpace(f.Text))
		a.pages[f.Page] = true
	}

	stats := make(map[float64]FontStat, len(aggs))
	type candidate struct {
		score int
		size  float64
	}
	candidates := make([]candidate, 0, len(aggs))
	for size, a := range aggs {
		stats[size] = FontStat{Count: a.count, CharTotal: a.chars, PageCount: len(a.pages)}
		candidates = append(candidates, candidate{score: a.chars * len(a.pages), size: size})
	}

	bodySize := DefaultBodyFontSize
	if len(candidates) > 0 {
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return candidates[i].size > candidates[j].size
		})
		bodySize = candidates[0].size
	}
	return stats, bodySize
}
