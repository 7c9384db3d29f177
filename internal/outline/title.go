package outline

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// A title candidate needs at least this many characters once trimmed.
const minTitleRunes = 3

// selectTitle picks the document title: the visually largest fragment that
// is not boilerplate, table content, or paragraph text. Ties on size are
// broken by the highest page number, then by the lexically greatest text,
// which keeps the choice deterministic for identical inputs.
func (a *analysis) selectTitle(frags []fragment.Fragment) *fragment.Fragment {
	type candidate struct {
		size float64
		page int
		text string
		frag fragment.Fragment
	}
	var candidates []candidate

	for i, f := range frags {
		if a.tables[i] || a.eng.isBoilerplate(f) || a.isParagraphText(f) {
			continue
		}
		text := strings.TrimSpace(f.Text)
		if utf8.RuneCountInString(text) < minTitleRunes {
			continue
		}
		candidates = append(candidates, candidate{size: f.FontSize, page: f.Page, text: text, frag: f})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].size != candidates[j].size {
			return candidates[i].size > candidates[j].size
		}
		if candidates[i].page != candidates[j].page {
			return candidates[i].page > candidates[j].page
		}
		return candidates[i].text > candidates[j].text
	})

	top := candidates[0].frag
	return &top
}

// titleText renders the selected title with whitespace collapsed, or the
// placeholder when nothing qualified.
func (a *analysis) titleText() string {
	if a.title == nil {
		return DefaultTitle
	}
	return strings.Join(strings.Fields(a.title.Text), " ")
}
