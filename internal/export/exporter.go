// Package export writes a batch of track records to library.json.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/listenupapp/tagexport/internal/domain"
	"github.com/listenupapp/tagexport/internal/errors"
	"github.com/listenupapp/tagexport/internal/picker"
	"github.com/listenupapp/tagexport/internal/pipeline"
	"github.com/listenupapp/tagexport/internal/session"
)

// DefaultFileName is the name of the exported document.
const DefaultFileName = "library.json"

// Status lines sent to the observer.
const (
	LogExporting = "Exporting metadata to JSON…"
	LogSavingTo  = "Saving to: "
	LogComplete  = "Export complete!"
	LogCanceled  = "Export canceled."
)

// Request describes one export.
type Request struct {
	// OutputDir wins when set.
	OutputDir string
	// SourceDir is the directory the records were read from.
	SourceDir string
	Records   domain.Batch
}

// Outcome is either a saved path or a cancellation, never both.
type Outcome struct {
	SavedTo  string `json:"savedTo,omitempty"`
	Canceled bool   `json:"canceled"`
}

// Exporter resolves the output location and writes the document.
type Exporter struct {
	logger   *slog.Logger
	fileName string
}

// New creates an exporter. An empty fileName means DefaultFileName.
func New(logger *slog.Logger, fileName string) *Exporter {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Exporter{logger: logger, fileName: fileName}
}

// FileName returns the document name written into the resolved directory.
func (e *Exporter) FileName() string {
	return e.fileName
}

// Export writes req.Records as an indented JSON array to
// <dir>/<fileName>, overwriting any existing file.
//
// The directory is req.OutputDir, else req.SourceDir, else whatever pick
// returns. A canceled pick yields Outcome{Canceled: true} and nothing is
// written. A picked directory becomes the session's last directory.
func (e *Exporter) Export(ctx context.Context, req Request, pick picker.Picker, sess *session.Session, obs pipeline.Observer) (Outcome, error) {
	if obs == nil {
		obs = pipeline.NopObserver{}
	}

	obs.OnLog(LogExporting)

	dir, ok, err := e.resolveDir(ctx, req, pick, sess)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		obs.OnLog(LogCanceled)
		e.logger.Info("export canceled")
		return Outcome{Canceled: true}, nil
	}

	data, err := Encode(req.Records)
	if err != nil {
		return Outcome{}, errors.Wrap(err, errors.CodeInternal, "failed to encode records")
	}

	target := filepath.Join(dir, e.fileName)
	obs.OnLog(LogSavingTo + target)

	if err := os.WriteFile(target, data, 0o644); err != nil {
		e.logger.Error("export write failed", "path", target, "error", err)
		return Outcome{}, errors.Write(target, err)
	}

	obs.OnLog(LogComplete)
	e.logger.Info("export complete", "path", target, "records", len(req.Records), "bytes", len(data))

	return Outcome{SavedTo: target}, nil
}

func (e *Exporter) resolveDir(ctx context.Context, req Request, pick picker.Picker, sess *session.Session) (string, bool, error) {
	if req.OutputDir != "" {
		return req.OutputDir, true, nil
	}
	if req.SourceDir != "" {
		return req.SourceDir, true, nil
	}
	if pick == nil {
		return "", false, nil
	}

	dir, ok, err := pick.PickDirectory(ctx, "output")
	if err != nil {
		return "", false, errors.Wrap(err, errors.CodeInternal, "directory selection failed")
	}
	if !ok || dir == "" {
		return "", false, nil
	}
	if sess != nil {
		sess.SetLastDirectory(dir)
	}
	return dir, true, nil
}

// Encode renders records as a JSON array with two-space indentation and a
// trailing newline. A nil batch encodes as [].
func Encode(records domain.Batch) ([]byte, error) {
	if records == nil {
		records = domain.Batch{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
