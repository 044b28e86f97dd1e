package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/headtree/internal/metrics"
	"github.com/dgallion1/headtree/internal/parser"
)

// Worker processes a single annotation job.
type Worker struct {
	annotator *Annotator
	metrics   *metrics.Metrics
	log       *slog.Logger

	maxConcurrentTrees int
	pdfFallback        bool
}

func NewWorker(ann *Annotator, m *metrics.Metrics, log *slog.Logger, maxTrees int, pdfFallback bool) *Worker {
	if maxTrees <= 0 {
		maxTrees = 1
	}
	return &Worker{
		annotator:          ann,
		metrics:            m,
		log:                log,
		maxConcurrentTrees: maxTrees,
		pdfFallback:        pdfFallback,
	}
}

// Process reads every tree in the job's file and annotates them with
// bounded concurrency. A tree that fails is recorded on the job and the
// rest carry on.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		w.fail(job, err.Error(), "parsing")
		return
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.pdfFallback
	}

	trees, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	job.releaseFileData()
	if err != nil {
		log.Error("parse failed", "error", err)
		w.fail(job, fmt.Sprintf("parse: %s", err), "parsing")
		return
	}
	job.SetTotalTrees(len(trees))
	log.Info("parsed file", "trees", len(trees))

	if len(trees) == 0 {
		log.Warn("no trees found")
		w.fail(job, "no trees found", "parsing")
		return
	}

	// Phase 2: Annotate
	job.SetStatus(StatusAnnotating, "annotating")
	g := new(errgroup.Group)
	g.SetLimit(w.maxConcurrentTrees)
	for i, t := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				job.RecordTree(i, nil, err)
				return nil
			}
			res, err := w.annotator.Annotate(ctx, t)
			if err != nil {
				log.Warn("annotation failed", "tree", i+1, "error", err)
			}
			job.RecordTree(i, res, err)
			return nil
		})
	}
	_ = g.Wait()

	snap := job.Snapshot()
	log.Info("annotation complete",
		"annotated", snap.Progress.TreesAnnotated,
		"failed", snap.Progress.TreesFailed,
	)

	switch {
	case snap.Progress.TreesFailed == 0:
		job.SetStatus(StatusCompleted, "done")
	case snap.Progress.TreesAnnotated > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusFailed, "annotating")
	}
	w.metrics.JobFinished(string(job.Snapshot().Status), len(trees))
}

func (w *Worker) fail(job *Job, msg, phase string) {
	job.releaseFileData()
	job.AddError(msg)
	job.SetStatus(StatusFailed, phase)
	w.metrics.JobFinished(string(StatusFailed), 0)
}
