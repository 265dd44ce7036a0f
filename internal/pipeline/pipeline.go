// Package pipeline runs metadata extraction over a list of files, one file
// at a time, in input order.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/listenupapp/tagexport/internal/domain"
	"github.com/listenupapp/tagexport/internal/extract"
)

// Extractor is the per-file step. It must never fail.
type Extractor interface {
	ExtractOne(ctx context.Context, path string) extract.Result
}

// Report is the outcome of a run.
type Report struct {
	// Records is index-aligned with the input paths. On cancellation it
	// holds only the files finished before the stop.
	Records  domain.Batch
	Total    int
	Degraded int
	Canceled bool
	Elapsed  time.Duration
}

// Pipeline drives an Extractor over a batch of paths.
type Pipeline struct {
	extractor Extractor
	logger    *slog.Logger
}

// New creates a pipeline.
func New(extractor Extractor, logger *slog.Logger) *Pipeline {
	return &Pipeline{extractor: extractor, logger: logger}
}

// Run extracts every path sequentially. Before each file it reports
// Progress{Current: i+1, Total: len(paths), File: paths[i]} to obs.
//
// Cancellation is checked between files. A canceled run returns the records
// completed so far with Canceled set.
func (p *Pipeline) Run(ctx context.Context, paths []string, obs Observer) Report {
	if obs == nil {
		obs = NopObserver{}
	}

	start := time.Now()
	report := Report{
		Records: make(domain.Batch, 0, len(paths)),
		Total:   len(paths),
	}

	for i, path := range paths {
		if ctx.Err() != nil {
			report.Canceled = true
			break
		}

		obs.OnProgress(Progress{Current: i + 1, Total: len(paths), File: path})

		res := p.extractor.ExtractOne(ctx, path)
		if res.Degraded && interrupted(ctx, res.Err) {
			// The read was cut short, not broken. Leave it out.
			report.Canceled = true
			break
		}
		if res.Degraded {
			report.Degraded++
		}
		report.Records = append(report.Records, res.Record)
	}

	report.Elapsed = time.Since(start)

	p.logger.Debug("pipeline finished",
		"total", report.Total,
		"processed", len(report.Records),
		"degraded", report.Degraded,
		"canceled", report.Canceled,
		"elapsed", report.Elapsed,
	)

	return report
}

func interrupted(ctx context.Context, err error) bool {
	if ctx.Err() == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
