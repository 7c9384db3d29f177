package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// DOCXExtractor handles .docx files. Paragraph styles carry the
// structure: Title maps to the title size, Heading1..Heading6 onto the
// ladder, everything else to body size.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(r io.Reader, filename string) ([]fragment.Fragment, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docstruct-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	frags := make([]fragment.Fragment, 0, 32)
	page := 1

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		fontSize, bold := docxStyleSize(para)
		if bold {
			// Headings and titles open a new synthetic page.
			page++
		}
		frags = append(frags, fragment.Fragment{
			Text:     text,
			Page:     page,
			FontSize: fontSize,
			Bold:     bold,
		})
	}
	return frags, nil
}

// docxStyleSize maps a paragraph style onto the synthetic size ladder.
func docxStyleSize(para *docx.Paragraph) (float64, bool) {
	if para.Properties == nil || para.Properties.Style == nil {
		return sizeBody, false
	}
	style := para.Properties.Style.Val
	if strings.EqualFold(style, "Title") {
		return sizeTitle, true
	}
	for level := 1; level <= 6; level++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", level)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", level)) {
			return headingSize(level), true
		}
	}
	return sizeBody, false
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
