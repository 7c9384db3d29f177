package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dgallion1/docstruct/internal/extract"
	"github.com/dgallion1/docstruct/internal/source"
)

// BatchSummary reports the outcome of one batch run.
type BatchSummary struct {
	RunID   string `json:"run_id"`
	Parsed  int    `json:"parsed"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// RunBatch traverses src, parses every supported document with a pool of
// workers, and writes one JSON document per input under outDir. A document
// that fails to parse is logged and counted; it does not stop the run. A
// traversal error aborts the run after in-flight documents finish.
func RunBatch(ctx context.Context, src source.Source, parser *Parser, outDir string, workers int, log *slog.Logger) (BatchSummary, error) {
	if workers < 1 {
		workers = 1
	}
	summary := BatchSummary{RunID: NewULID()}
	log = log.With("run_id", summary.RunID, "source", src.Type())

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return summary, fmt.Errorf("create output dir: %w", err)
	}

	items, errs := src.Traverse(ctx)

	type outcome struct {
		path    string
		skipped bool
		err     error
	}
	results := make(chan outcome)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range items {
				if !extract.IsSupportedExtension(item.Path) {
					log.Debug("skipping unsupported file", "path", item.Path)
					results <- outcome{path: item.Path, skipped: true}
					continue
				}

				start := time.Now()
				res, err := parser.Parse(bytes.NewReader(item.Content), item.Path)
				if err != nil {
					results <- outcome{path: item.Path, err: err}
					continue
				}
				outPath, err := WriteDocumentFile(outDir, item.Path, res.Document)
				if err != nil {
					results <- outcome{path: item.Path, err: err}
					continue
				}

				log.Info("parsed document",
					"path", item.Path,
					"output", outPath,
					"title", res.Document.Title,
					"outline_entries", len(res.Document.Outline),
					"duration_ms", time.Since(start).Milliseconds())
				results <- outcome{path: item.Path}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		switch {
		case r.skipped:
			summary.Skipped++
		case r.err != nil:
			log.Error("parse failed", "path", r.path, "error", r.err)
			summary.Failed++
		default:
			summary.Parsed++
		}
	}

	if err := <-errs; err != nil {
		return summary, fmt.Errorf("traverse %s: %w", src.Type(), err)
	}

	log.Info("batch complete",
		"parsed", summary.Parsed,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return summary, nil
}
