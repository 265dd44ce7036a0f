// Package service orchestrates the preview, export and browse flows.
package service

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/domain"
	"github.com/listenupapp/tagexport/internal/export"
	"github.com/listenupapp/tagexport/internal/picker"
	"github.com/listenupapp/tagexport/internal/pipeline"
	"github.com/listenupapp/tagexport/internal/scanner"
	"github.com/listenupapp/tagexport/internal/session"
)

// Options are the configured defaults a LibraryService falls back to.
type Options struct {
	// LibraryDir is used when a request names no source directory.
	LibraryDir   string
	OutputDir    string
	PreviewCount int
}

// OptionsFromConfig extracts service options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		LibraryDir:   cfg.Library.Directory,
		OutputDir:    cfg.Export.OutputDir,
		PreviewCount: cfg.Preview.Count,
	}
}

// LibraryService runs enumerate, sample, extract and export against one
// session.
type LibraryService struct {
	enumerator *scanner.Enumerator
	sampler    *scanner.Sampler
	pipeline   *pipeline.Pipeline
	exporter   *export.Exporter
	session    *session.Session
	opts       Options
	logger     *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	enumerator *scanner.Enumerator,
	sampler *scanner.Sampler,
	pipe *pipeline.Pipeline,
	exporter *export.Exporter,
	sess *session.Session,
	opts Options,
	logger *slog.Logger,
) *LibraryService {
	if opts.PreviewCount <= 0 {
		opts.PreviewCount = config.DefaultPreviewCount
	}
	return &LibraryService{
		enumerator: enumerator,
		sampler:    sampler,
		pipeline:   pipe,
		exporter:   exporter,
		session:    sess,
		opts:       opts,
		logger:     logger,
	}
}

// Session returns the session the service reads and updates.
func (s *LibraryService) Session() *session.Session {
	return s.session
}

// PreviewRequest asks for a random sample of a directory.
type PreviewRequest struct {
	// RunID tags progress events. Empty means generate one.
	RunID     string
	Directory string
	// Count is clamped to 1..100. Zero means the configured default.
	Count int
}

// PreviewResult is the sampled batch. Canceled means the picker was
// dismissed and nothing was read.
type PreviewResult struct {
	RunID       string
	Canceled    bool
	Interrupted bool
	Directory   string
	// Total is the number of candidate files in Directory.
	Total    int
	Records  domain.Batch
	Degraded int
}

// Preview picks a directory, samples up to Count candidate files and
// extracts them. The directory becomes the session's last directory.
func (s *LibraryService) Preview(ctx context.Context, req PreviewRequest, pick picker.Picker, obs pipeline.Observer) (*PreviewResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, ok, err := s.sourceDir(ctx, req.Directory, s.opts.LibraryDir, pick)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("preview canceled")
		return &PreviewResult{Canceled: true, Records: domain.Batch{}}, nil
	}

	paths, err := s.enumerator.ListCandidateFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	s.session.SetLastDirectory(dir)

	count := req.Count
	if count == 0 {
		count = s.opts.PreviewCount
	}
	count = config.ClampPreviewCount(count)

	runID := runIDOrNew(req.RunID)
	sampled := s.sampler.Sample(paths, count)
	report := s.pipeline.Run(ctx, sampled, pipeline.WithRunID(orNop(obs), runID))

	s.logger.Info("preview complete",
		"run_id", runID,
		"directory", dir,
		"candidates", len(paths),
		"sampled", len(sampled),
		"degraded", report.Degraded,
		"elapsed", report.Elapsed,
	)

	return &PreviewResult{
		RunID:       runID,
		Interrupted: report.Canceled,
		Directory:   dir,
		Total:       len(paths),
		Records:     report.Records,
		Degraded:    report.Degraded,
	}, nil
}

// ExportRequest asks for every candidate file of a directory to be exported.
type ExportRequest struct {
	RunID     string
	Directory string
	OutputDir string
}

// ExportResult reports where the document went. Canceled means a picker was
// dismissed and nothing was written.
type ExportResult struct {
	RunID    string
	Canceled bool
	SavedTo  string
	Count    int
	Degraded int
}

// ExportAll extracts every candidate file and writes the document.
//
// The source is req.Directory, else the session's last directory, else the
// configured library directory, else the picker. An interrupted run writes
// nothing and returns the context error.
func (s *LibraryService) ExportAll(ctx context.Context, req ExportRequest, pick picker.Picker, obs pipeline.Observer) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obs = orNop(obs)

	fallback := s.session.LastDirectory()
	if fallback == "" {
		fallback = s.opts.LibraryDir
	}
	dir, ok, err := s.sourceDir(ctx, req.Directory, fallback, pick)
	if err != nil {
		return nil, err
	}
	if !ok {
		obs.OnLog(export.LogCanceled)
		s.logger.Info("export canceled before source selection")
		return &ExportResult{Canceled: true}, nil
	}

	paths, err := s.enumerator.ListCandidateFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	s.session.SetLastDirectory(dir)

	runID := runIDOrNew(req.RunID)
	runObs := pipeline.WithRunID(obs, runID)

	report := s.pipeline.Run(ctx, paths, runObs)
	if report.Canceled {
		s.logger.Warn("export interrupted", "run_id", runID, "completed", len(report.Records), "total", report.Total)
		return nil, ctx.Err()
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.opts.OutputDir
	}

	outcome, err := s.exporter.Export(ctx, export.Request{
		OutputDir: outputDir,
		SourceDir: dir,
		Records:   report.Records,
	}, pick, s.session, runObs)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		RunID:    runID,
		Canceled: outcome.Canceled,
		SavedTo:  outcome.SavedTo,
		Count:    len(report.Records),
		Degraded: report.Degraded,
	}, nil
}

func (s *LibraryService) sourceDir(ctx context.Context, explicit, fallback string, pick picker.Picker) (string, bool, error) {
	dir := explicit
	if dir == "" {
		dir = fallback
	}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", false, err
		}
		return abs, true, nil
	}
	if pick == nil {
		return "", false, nil
	}
	return pick.PickDirectory(ctx, "source")
}

func runIDOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func orNop(obs pipeline.Observer) pipeline.Observer {
	if obs == nil {
		return pipeline.NopObserver{}
	}
	return obs
}
