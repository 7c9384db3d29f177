package outline

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/fragment"
)

func TestClassifyLevel_WithTitle(t *testing.T) {
	a := newAnalysis(t, 12, nil)
	a.title = &fragment.Fragment{Text: "Document Title", Page: 1, FontSize: 20}
	a.titlePage = 1

	tests := []struct {
		name string
		frag fragment.Fragment
		want string
	}{
		{"above title size", fragment.Fragment{Text: "Display", FontSize: 22, Bold: true}, ""},
		{"at title size", fragment.Fragment{Text: "Display", FontSize: 20, Bold: true}, ""},
		{"between title and body", fragment.Fragment{Text: "Section", FontSize: 16, Bold: true}, LevelH1},
		{"barely above body", fragment.Fragment{Text: "Section", FontSize: 12.5}, LevelH1},
		{"bold body short", fragment.Fragment{Text: "Neurons and Layers", FontSize: 12, Bold: true}, LevelH2},
		{"bold body eleven words", fragment.Fragment{Text: "one two three four five six seven eight nine ten eleven", FontSize: 12, Bold: true}, ""},
		{"regular body", fragment.Fragment{Text: "Plain sentence.", FontSize: 12}, ""},
		{"below body", fragment.Fragment{Text: "Footnote text", FontSize: 10}, ""},
	}
	for _, tt := range tests {
		if got := a.classifyLevel(tt.frag); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestClassifyLevel_FallbackTitleSize(t *testing.T) {
	a := newAnalysis(t, 12, nil)
	// No title: sizes are capped at the fallback of 16 points.
	tests := []struct {
		size float64
		want string
	}{
		{15.9, LevelH1},
		{16, ""},
		{18, ""},
	}
	for _, tt := range tests {
		got := a.classifyLevel(fragment.Fragment{Text: "Heading", FontSize: tt.size, Bold: true})
		if got != tt.want {
			t.Errorf("size %v: expected %q, got %q", tt.size, tt.want, got)
		}
	}
}

func TestIsParagraphText(t *testing.T) {
	a := newAnalysis(t, 12, nil)
	tests := []struct {
		name string
		frag fragment.Fragment
		want bool
	}{
		{"regular body", fragment.Fragment{Text: "Some prose.", FontSize: 12}, true},
		{"bold short body", fragment.Fragment{Text: "Key Points", FontSize: 12, Bold: true}, false},
		{"bold multiline body", fragment.Fragment{Text: "First line\nsecond line", FontSize: 12, Bold: true}, true},
		{"bold long body", fragment.Fragment{
			Text:     "a b c d e f g h i j k l m n o p",
			FontSize: 12,
			Bold:     true,
		}, true},
		{"bold fifteen words", fragment.Fragment{
			Text:     "a b c d e f g h i j k l m n o",
			FontSize: 12,
			Bold:     true,
		}, false},
		{"larger size", fragment.Fragment{Text: "Heading Text", FontSize: 14}, false},
		{"smaller size", fragment.Fragment{Text: "Tiny footnote", FontSize: 9}, false},
	}
	for _, tt := range tests {
		if got := a.isParagraphText(tt.frag); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
