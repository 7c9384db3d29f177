package outline

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/fragment"
)

func TestDetectTableRegions_Indicators(t *testing.T) {
	eng := newTestEngine(t)
	tests := []struct {
		text string
		want bool
	}{
		{"Version", true},
		{"date", true},
		{"Remarks", true},
		{"Syllabus", true},
		{"0.1", true},
		{"v1.2.3", true},
		{"Rev 3", true},
		{"Revision 12", true},
		{"12/5/23", true},
		{"Version history of this document", false},
		{"Architecture", false},
	}
	for _, tt := range tests {
		frags := []fragment.Fragment{{Text: tt.text, Page: 1, FontSize: 12}}
		regions := eng.detectTableRegions(frags)
		if got := regions[0]; got != tt.want {
			t.Errorf("detectTableRegions(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestDetectTableRegions_TabularStructure(t *testing.T) {
	eng := newTestEngine(t)
	frags := []fragment.Fragment{
		{Text: "Change log", Page: 1, FontSize: 10},
		{Text: "Version", Page: 1, FontSize: 10},
		{Text: "Date", Page: 1, FontSize: 10},
		{Text: "1.0", Page: 1, FontSize: 10},
		{Text: "First release", Page: 1, FontSize: 10},
	}
	regions := eng.detectTableRegions(frags)
	if len(regions) != len(frags) {
		t.Fatalf("expected all %d fragments in table region, got %d", len(frags), len(regions))
	}
}

func TestDetectTableRegions_PageIsolation(t *testing.T) {
	eng := newTestEngine(t)
	// Same fragments, but the first one sits on another page. Header
	// words on page 1 must not pull a page 2 fragment into the table.
	frags := []fragment.Fragment{
		{Text: "Change log", Page: 2, FontSize: 10},
		{Text: "Version", Page: 1, FontSize: 10},
		{Text: "Date", Page: 1, FontSize: 10},
		{Text: "1.0", Page: 1, FontSize: 10},
		{Text: "First release", Page: 1, FontSize: 10},
	}
	regions := eng.detectTableRegions(frags)
	if regions[0] {
		t.Error("expected fragment on another page to stay out of table region")
	}
	for i := 1; i < len(frags); i++ {
		if !regions[i] {
			t.Errorf("expected fragment %d to stay in table region", i)
		}
	}
}

func TestDetectTableRegions_NeighborPullsIn(t *testing.T) {
	eng := newTestEngine(t)
	frags := []fragment.Fragment{
		{Text: "Date", Page: 1, FontSize: 10},
		{Text: "Approved by the finance team yesterday evening", Page: 1, FontSize: 12},
	}
	regions := eng.detectTableRegions(frags)
	if !regions[0] {
		t.Error("expected header word itself to be a table fragment")
	}
	if !regions[1] {
		t.Error("expected fragment next to header word to join the table region")
	}
}

func TestDetectTableRegions_NeighborWindowBounds(t *testing.T) {
	eng := newTestEngine(t)
	filler := "the quarterly financial planning review meeting"
	frags := make([]fragment.Fragment, 0, 8)
	frags = append(frags, fragment.Fragment{Text: "Date", Page: 1, FontSize: 12})
	for range 7 {
		frags = append(frags, fragment.Fragment{Text: filler, Page: 1, FontSize: 12})
	}

	regions := eng.detectTableRegions(frags)
	if !regions[5] {
		t.Error("expected fragment 5 positions from header word to be pulled in")
	}
	if regions[6] {
		t.Error("expected fragment 6 positions away to stay out")
	}
	if regions[7] {
		t.Error("expected fragment 7 positions away to stay out")
	}
}

func TestDetectTableRegions_StructureWindowBounds(t *testing.T) {
	eng := newTestEngine(t)
	// Two header-term carriers at the front, then short cells. A cell ten
	// positions from both carriers still sees two terms; one position
	// further drops the first carrier out of the window.
	frags := []fragment.Fragment{
		{Text: "version info", Page: 1, FontSize: 12},
		{Text: "date column", Page: 1, FontSize: 12},
	}
	for range 12 {
		frags = append(frags, fragment.Fragment{Text: "cell", Page: 1, FontSize: 12})
	}

	regions := eng.detectTableRegions(frags)
	if !regions[10] {
		t.Error("expected fragment 10 positions from both carriers to be marked")
	}
	if regions[11] {
		t.Error("expected fragment with a single carrier in window to stay out")
	}
}
