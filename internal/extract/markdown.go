package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings map
// onto the synthetic size ladder and open a new page; every other
// top-level block becomes one body fragment.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) ([]fragment.Fragment, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	frags := make([]fragment.Fragment, 0, 32)
	page := 1

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := blockText(node, src)
			if title == "" {
				continue
			}
			page++
			frags = append(frags, fragment.Fragment{
				Text:     title,
				Page:     page,
				FontSize: headingSize(node.Level),
				Bold:     true,
			})
		default:
			t := blockText(n, src)
			if t != "" {
				frags = append(frags, fragment.Fragment{
					Text:     t,
					Page:     page,
					FontSize: sizeBody,
				})
			}
		}
	}
	return frags, nil
}

// blockText gets the text content of a goldmark AST node. Leaf blocks
// without inline children (code blocks) are read from their source
// lines; everything else comes from the inline tree.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			if c.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
