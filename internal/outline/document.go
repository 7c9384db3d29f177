package outline

import (
	"encoding/json"
	"io"
)

// Entry is one accepted heading in a document outline.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Document is the externally visible result: a title and the flat outline,
// in reading order.
type Document struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Paragraph is one body-content record retained by the final pass.
type Paragraph struct {
	Text string `json:"text"`
	Page int    `json:"page"`
	Type string `json:"type"`
}

// Result carries everything Analyze derives from one fragment sequence.
// Document is what gets persisted; the rest is diagnostic.
type Result struct {
	Document

	Body         []Paragraph          `json:"-"`
	BodyFontSize float64              `json:"-"`
	Fonts        map[float64]FontStat `json:"-"`
}

// EncodeDocument writes doc as indented JSON. HTML escaping is off so that
// non-ASCII titles and headings survive byte-for-byte.
func EncodeDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
