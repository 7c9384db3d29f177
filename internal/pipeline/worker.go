package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Worker processes a single parse job.
type Worker struct {
	parser *Parser
	stats  *ParseStats
	outDir string
	log    *slog.Logger
}

// NewWorker returns a worker. If outDir is empty, results are held in
// memory only and served through the result endpoint.
func NewWorker(parser *Parser, stats *ParseStats, outDir string, log *slog.Logger) *Worker {
	return &Worker{
		parser: parser,
		stats:  stats,
		outDir: outDir,
		log:    log,
	}
}

// Process runs the full parse pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if w.stats != nil {
			w.stats.Record(elapsed.Milliseconds())
		}
		documentsParsed.WithLabelValues(string(job.Snapshot().Status)).Inc()
		parseDuration.Observe(elapsed.Seconds())
	}()

	// The queue may still hold jobs after shutdown begins.
	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	// Phase 1: Extract fragments
	job.SetStatus(StatusExtracting, "extracting fragments")
	frags, err := w.parser.Fragments(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetFragments(len(frags))
	log.Info("extracted fragments", "fragments", len(frags))

	// Phase 2: Infer structure
	job.SetStatus(StatusAnalyzing, "inferring structure")
	res := w.parser.Analyze(frags)
	// A caller-supplied title wins over the inferred one.
	if t := job.Snapshot().Title; t != "" {
		res.Document.Title = t
	}
	job.SetResult(res)
	log.Info("analyzed document",
		"title", res.Document.Title,
		"outline_entries", len(res.Document.Outline),
		"body_font_size", res.BodyFontSize)

	// Phase 3: Persist, when an output directory is configured.
	if w.outDir != "" {
		job.SetStatus(StatusWriting, "writing output")
		outPath, err := WriteDocumentFile(w.outDir, job.Filename, res.Document)
		if err != nil {
			log.Error("write failed", "error", err)
			job.AddError(fmt.Sprintf("write: %s", err))
			job.SetStatus(StatusFailed, "writing")
			return
		}
		log.Info("wrote document", "path", outPath)
	}

	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed", "duration_ms", time.Since(start).Milliseconds())
}
