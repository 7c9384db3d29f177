// Package extract converts source documents into flat, page-ordered
// text fragments. Each supported format has its own extractor; all of
// them produce the same fragment shape so the structure analysis
// downstream does not care where a document came from.
//
// Formats with real typography (PDF) report measured font sizes.
// Formats that only mark structure (Markdown, HTML, DOCX styles) are
// mapped onto a synthetic size ladder, and every heading starts a new
// synthetic page so that page numbers delimit sections.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// Synthetic font sizes for formats that carry structure but no
// typography. The ladder keeps document titles above section headings
// and headings above body text.
const (
	sizeTitle = 24.0
	sizeBody  = 12.0
)

// headingSize maps a heading level (h1..h6 or Heading1..Heading6) onto
// the synthetic ladder.
func headingSize(level int) float64 {
	switch level {
	case 1:
		return 20.0
	case 2:
		return 16.0
	case 3:
		return 14.0
	default:
		return 13.0
	}
}

// Extractor produces the fragment sequence for one document.
type Extractor interface {
	Extract(r io.Reader, filename string) ([]fragment.Fragment, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".json":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".json":
		return &FragmentsExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
