package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/listenupapp/tagexport/internal/domain"
	"github.com/listenupapp/tagexport/internal/picker"
	"github.com/listenupapp/tagexport/internal/service"
	"github.com/listenupapp/tagexport/internal/session"
	"github.com/listenupapp/tagexport/internal/sse"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "previewLibrary",
		Method:      http.MethodPost,
		Path:        "/api/v1/preview",
		Summary:     "Preview a random sample",
		Description: "Samples up to count audio files from the directory and returns their metadata. Progress is streamed on /api/v1/events.",
		Tags:        []string{"Library"},
		Middlewares: huma.Middlewares{s.rateLimited},
	}, s.handlePreview)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportLibrary",
		Method:      http.MethodPost,
		Path:        "/api/v1/export",
		Summary:     "Export all metadata",
		Description: "Reads every audio file in the directory and writes library.json to the output directory.",
		Tags:        []string{"Library"},
		Middlewares: huma.Middlewares{s.rateLimited},
	}, s.handleExport)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get session state",
		Description: "Returns the last directory chosen for preview or export",
		Tags:        []string{"Library"},
	}, s.handleGetSession)
}

// === DTOs ===

// PreviewRequest is the body of a preview call.
type PreviewRequest struct {
	Directory string `json:"directory,omitempty" validate:"abspath,nonul" doc:"Absolute source directory. Defaults to the configured library directory."`
	Count     int    `json:"count,omitempty" minimum:"1" maximum:"100" doc:"Sample size. Defaults to the configured preview count."`
}

// PreviewInput wraps the preview body for Huma.
type PreviewInput struct {
	Body PreviewRequest `required:"false"`
}

// PreviewResponse is the sampled batch.
type PreviewResponse struct {
	Canceled    bool         `json:"canceled" doc:"True when no directory was given and none could be chosen"`
	Interrupted bool         `json:"interrupted,omitempty" doc:"True when the request was canceled mid-batch"`
	RunID       string       `json:"runId,omitempty" doc:"Tags the progress events of this run"`
	Directory   string       `json:"directory,omitempty"`
	Total       int          `json:"total" doc:"Candidate files in the directory"`
	Records     domain.Batch `json:"records"`
	Degraded    int          `json:"degraded" doc:"Records built from the file name because tags could not be read"`
}

// PreviewOutput wraps the preview response for Huma.
type PreviewOutput struct {
	Body PreviewResponse
}

// ExportRequest is the body of an export call.
type ExportRequest struct {
	Directory string `json:"directory,omitempty" validate:"abspath,nonul" doc:"Absolute source directory. Defaults to the last previewed directory."`
	OutputDir string `json:"outputDir,omitempty" validate:"abspath,nonul" doc:"Absolute output directory. Defaults to the source directory."`
}

// ExportInput wraps the export body for Huma.
type ExportInput struct {
	Body ExportRequest `required:"false"`
}

// ExportResponse reports where library.json was written.
type ExportResponse struct {
	Canceled bool   `json:"canceled"`
	RunID    string `json:"runId,omitempty"`
	SavedTo  string `json:"savedTo,omitempty"`
	Count    int    `json:"count"`
	Degraded int    `json:"degraded"`
}

// ExportOutput wraps the export response for Huma.
type ExportOutput struct {
	Body ExportResponse
}

// SessionOutput wraps the session snapshot for Huma.
type SessionOutput struct {
	Body session.Snapshot
}

// === Handlers ===

func (s *Server) handlePreview(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, fromDomain(err)
	}

	runID := uuid.NewString()
	res, err := s.library.Preview(ctx, service.PreviewRequest{
		RunID:     runID,
		Directory: input.Body.Directory,
		Count:     input.Body.Count,
	}, picker.Cancel{}, sse.NewObserver(s.sseManager, runID))
	if err != nil {
		return nil, fromDomain(err)
	}

	return &PreviewOutput{Body: PreviewResponse{
		Canceled:    res.Canceled,
		Interrupted: res.Interrupted,
		RunID:       res.RunID,
		Directory:   res.Directory,
		Total:       res.Total,
		Records:     res.Records,
		Degraded:    res.Degraded,
	}}, nil
}

func (s *Server) handleExport(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, fromDomain(err)
	}

	runID := uuid.NewString()
	res, err := s.library.ExportAll(ctx, service.ExportRequest{
		RunID:     runID,
		Directory: input.Body.Directory,
		OutputDir: input.Body.OutputDir,
	}, picker.Cancel{}, sse.NewObserver(s.sseManager, runID))
	if err != nil {
		return nil, fromDomain(err)
	}

	return &ExportOutput{Body: ExportResponse{
		Canceled: res.Canceled,
		RunID:    res.RunID,
		SavedTo:  res.SavedTo,
		Count:    res.Count,
		Degraded: res.Degraded,
	}}, nil
}

func (s *Server) handleGetSession(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	return &SessionOutput{Body: s.library.Session().Snapshot()}, nil
}
