package outline

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/fragment"
)

func TestIsHeaderFooter(t *testing.T) {
	eng := newTestEngine(t)
	tests := []struct {
		text string
		want bool
	}{
		{"Page 3", true},
		{"page 12 of 80", true},
		{"7", true},
		{"Chapter 2", true},
		{"© 2023 Example Corp", true},
		{"Strictly Confidential", true},
		{"Document ID: 42", true},
		{"Released 12/31/2024", true},
		{"12 - 14", true},
		{"3.1.4", true},
		{"Introduction", false},
		{"Page layout principles", false},
		{"A4 paper sizes", false},
		{"Pagination 5", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := eng.isHeaderFooter(fragment.Fragment{Text: tt.text}); got != tt.want {
			t.Errorf("isHeaderFooter(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestIsHeaderFooter_LongNumericRunNotMatched(t *testing.T) {
	eng := newTestEngine(t)
	// Over ten characters, a digit run alone is no longer treated as a
	// page number.
	if eng.isHeaderFooter(fragment.Fragment{Text: "123 456 789 012"}) {
		t.Error("expected long numeric run to pass through")
	}
}

func TestIsVersionOrDate(t *testing.T) {
	eng := newTestEngine(t)
	tests := []struct {
		text string
		want bool
	}{
		{"v1.2", true},
		{"V2.0 final", true},
		{"Version 3", true},
		{"Rev 7", true},
		{"1.0.3", true},
		{"Date: 2024-01-05", true},
		{"Created: last week", true},
		{"Updated: 2024", true},
		{"Veritas", false},
		{"revision notes", false},
		{"1.2 Scope", false},
	}
	for _, tt := range tests {
		if got := eng.isVersionOrDate(fragment.Fragment{Text: tt.text}); got != tt.want {
			t.Errorf("isVersionOrDate(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestIsDotsOrDashes(t *testing.T) {
	eng := newTestEngine(t)
	tests := []struct {
		text string
		want bool
	}{
		{"......", true},
		{"- - - - -", true},
		{"___", true},
		{"=====", true},
		{"~~~~", true},
		{". . . . .", true},
		{"..", false},
		{"a---b", false},
		{"", false},
		{"Summary", false},
	}
	for _, tt := range tests {
		if got := eng.isDotsOrDashes(fragment.Fragment{Text: tt.text}); got != tt.want {
			t.Errorf("isDotsOrDashes(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestIsTOCHeading(t *testing.T) {
	eng := newTestEngine(t)
	tests := []struct {
		text string
		want bool
	}{
		{"Table of Contents", true},
		{"CONTENTS", true},
		{"Index", true},
		{"Table des matières", true},
		{"Sommaire", true},
		{"Overview", false},
		{"Chapter listing", false},
	}
	for _, tt := range tests {
		if got := eng.isTOCHeading(fragment.Fragment{Text: tt.text}); got != tt.want {
			t.Errorf("isTOCHeading(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestIsTOCContent(t *testing.T) {
	eng := newTestEngine(t)
	tests := []struct {
		text string
		want bool
	}{
		{"3.", true},
		{"42", true},
		{"2.1 Installation", true},
		{"Introduction ..... 7", true},
		{"Getting Started 12", true},
		{"Introduction", false},
		{"Appendix A", false},
	}
	for _, tt := range tests {
		if got := eng.isTOCContent(fragment.Fragment{Text: tt.text}); got != tt.want {
			t.Errorf("isTOCContent(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestIsBoilerplate_CombinesPredicates(t *testing.T) {
	eng := newTestEngine(t)
	for _, text := range []string{"Page 9", "v2.0", "........"} {
		if !eng.isBoilerplate(fragment.Fragment{Text: text}) {
			t.Errorf("expected %q to be boilerplate", text)
		}
	}
	if eng.isBoilerplate(fragment.Fragment{Text: "Architecture Overview"}) {
		t.Error("expected heading text to pass through")
	}
}
