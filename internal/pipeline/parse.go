package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docstruct/internal/extract"
	"github.com/dgallion1/docstruct/internal/fragment"
	"github.com/dgallion1/docstruct/internal/outline"
)

// Parser ties format extraction to structure inference. It is immutable
// after construction and safe for concurrent use.
type Parser struct {
	engine *outline.Engine
}

func NewParser(cfg outline.Config) (*Parser, error) {
	engine, err := outline.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Parser{engine: engine}, nil
}

// Fragments extracts the flat fragment sequence from a source document.
// The extractor is chosen by filename extension.
func (p *Parser) Fragments(r io.Reader, filename string) ([]fragment.Fragment, error) {
	ex, err := extract.ForFile(filename)
	if err != nil {
		return nil, err
	}
	frags, err := ex.Extract(r, filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	return frags, nil
}

// Analyze infers the title and heading outline from a fragment sequence.
func (p *Parser) Analyze(frags []fragment.Fragment) *outline.Result {
	return p.engine.Analyze(frags)
}

// Parse extracts and analyzes a document in one step.
func (p *Parser) Parse(r io.Reader, filename string) (*outline.Result, error) {
	frags, err := p.Fragments(r, filename)
	if err != nil {
		return nil, err
	}
	return p.Analyze(frags), nil
}

// WriteDocumentFile writes doc as indented JSON under dir, mirroring the
// relative path of the source file with its extension swapped for .json.
// The write is atomic: the document is staged in a temp file in the target
// directory and renamed over the final path.
func WriteDocumentFile(dir, relPath string, doc outline.Document) (string, error) {
	outPath := filepath.Join(dir, outputName(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".docstruct-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := outline.EncodeDocument(tmp, doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("encode document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename output: %w", err)
	}
	return outPath, nil
}

// outputName swaps the extension of relPath for .json, keeping directory
// components so distinct sources cannot collide on a shared stem.
func outputName(relPath string) string {
	ext := filepath.Ext(relPath)
	return strings.TrimSuffix(relPath, ext) + ".json"
}
