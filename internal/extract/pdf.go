package extract

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dgallion1/docstruct/internal/fragment"
)

const (
	// pdfRowTolerance is the Y-coordinate tolerance for grouping text
	// spans into the same visual line.
	pdfRowTolerance = 3.0
	// pdfWordGapFactor times the font size is the horizontal gap that
	// separates two words on a line.
	pdfWordGapFactor = 0.3
)

// PDFExtractor handles PDF files. Text spans are grouped into visual
// lines by Y coordinate; each line becomes one fragment carrying the
// largest span font size and a bold flag derived from the font name.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(r io.Reader, filename string) ([]fragment.Fragment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var frags []fragment.Fragment
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		texts, err := pageTexts(page)
		if err != nil {
			// Skip pages the library cannot decode.
			continue
		}
		frags = append(frags, lineFragments(texts, pageNum)...)
	}
	return frags, nil
}

// pageTexts pulls the span list for one page. The content stream
// decoder panics on some malformed PDFs, so convert that into an error
// rather than taking down the caller.
func pageTexts(page pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content stream: %v", r)
		}
	}()
	return page.Content().Text, nil
}

// lineFragments groups the spans of one page into visual lines and
// emits one fragment per line.
func lineFragments(texts []pdf.Text, pageNum int) []fragment.Fragment {
	rows := groupRows(texts)

	frags := make([]fragment.Fragment, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})

		var (
			line    strings.Builder
			lastEnd float64
			maxSize float64
			bold    bool
		)
		for i, t := range row {
			if i > 0 && t.X-lastEnd > wordGap(t.FontSize) {
				line.WriteString(" ")
			}
			line.WriteString(t.S)
			lastEnd = t.X + t.W
			if t.FontSize > maxSize {
				maxSize = t.FontSize
			}
			if strings.Contains(strings.ToLower(t.Font), "bold") {
				bold = true
			}
		}

		text := strings.TrimSpace(line.String())
		if text == "" {
			continue
		}
		frags = append(frags, fragment.Normalize(fragment.Fragment{
			Text:     text,
			Page:     pageNum,
			FontSize: maxSize,
			Bold:     bold,
		}))
	}
	return frags
}

func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 3.0
	}
	return pdfWordGapFactor * fontSize
}

// groupRows buckets spans by Y coordinate, top of the page first.
// Spans within pdfRowTolerance of an existing bucket join it.
func groupRows(texts []pdf.Text) [][]pdf.Text {
	type rowBucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}

	var buckets []rowBucket
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-pdfRowTolerance && t.Y <= buckets[i].yMax+pdfRowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, rowBucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}

	// Higher Y means higher on the page.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([][]pdf.Text, len(buckets))
	for i := range buckets {
		rows[i] = buckets[i].texts
	}
	return rows
}
