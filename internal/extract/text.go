package extract

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// TextExtractor handles plain text files. Blank lines separate
// paragraphs; every paragraph becomes one body fragment.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) ([]fragment.Fragment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	frags := make([]fragment.Fragment, 0, 16)
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		frags = append(frags, fragment.Fragment{
			Text:     current.String(),
			Page:     1,
			FontSize: sizeBody,
		})
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frags, nil
}
