// Package extract turns one audio file into one TrackRecord.
package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listenupapp/tagexport/internal/domain"
	"github.com/listenupapp/tagexport/internal/errors"
	"github.com/listenupapp/tagexport/internal/normalize"
	"github.com/listenupapp/tagexport/internal/scanner/audio"
)

// Result is the outcome of extracting one file. Record is always usable.
// When Degraded is set, Record is the filename fallback and Err says why.
type Result struct {
	Record   domain.TrackRecord
	Degraded bool
	Err      error
}

// Extractor reads tags through an audio.Reader and normalizes them.
type Extractor struct {
	reader audio.Reader
	logger *slog.Logger
}

// New creates an extractor.
func New(reader audio.Reader, logger *slog.Logger) *Extractor {
	return &Extractor{reader: reader, logger: logger}
}

// ExtractOne never fails: any read error or panic in the reader yields the
// fallback record for path.
func (e *Extractor) ExtractOne(ctx context.Context, path string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = e.fallback(path, fmt.Errorf("reader panic: %v", r))
		}
	}()

	tags, err := e.reader.Read(ctx, path)
	if err != nil {
		return e.fallback(path, err)
	}

	for _, w := range tags.Warnings {
		e.logger.Debug("tag read warning", "path", path, "warning", w)
	}

	return Result{Record: Record(path, tags)}
}

// Record applies the field rules to tags read from path.
func Record(path string, tags *audio.Tags) domain.TrackRecord {
	title := normalize.Text(tags.Title)
	if title == "" {
		title = normalize.TitleFromFilename(path)
	}

	return domain.TrackRecord{
		Path:     domain.FileName(path),
		Title:    title,
		Artist:   normalize.Artist(tags.Artist),
		Album:    normalize.Text(tags.Album),
		Genre:    normalize.SanitizeGenres(tags.Genres),
		Year:     tags.Year,
		Track:    tags.Track,
		Duration: normalize.Duration(tags.Duration.Seconds()),
	}
}

func (e *Extractor) fallback(path string, cause error) Result {
	err := errors.TagParse(path, cause)
	e.logger.Debug("using fallback record", "path", path, "error", cause)
	return Result{
		Record:   normalize.Fallback(path),
		Degraded: true,
		Err:      err,
	}
}
