// Package audio reads tag metadata from audio files.
//
// Two backends implement Reader: TaglibReader (TagLib compiled to WASM, the
// default) and NativeReader (pure Go, one library per container). Neither
// loads embedded pictures.
package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/listenupapp/tagexport/internal/domain"
)

// Tags is the raw, un-normalized metadata of one file.
type Tags struct {
	Format   string
	Title    string
	Artist   domain.Artist
	Album    string
	Genres   []string
	Year     *int
	Track    *int
	Duration time.Duration

	// Warnings are non-fatal problems, e.g. a failed duration probe.
	Warnings []string
}

// Warnf records a non-fatal problem.
func (t *Tags) Warnf(format string, args ...any) {
	t.Warnings = append(t.Warnings, fmt.Sprintf(format, args...))
}

// Reader reads the tags of a single file. Implementations return an error for
// unreadable, truncated or unsupported files and never panic on bad input.
type Reader interface {
	Read(ctx context.Context, path string) (*Tags, error)
}

// UnsupportedFormatError is returned when no backend handles a file.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %s: %s", e.Path, e.Reason)
}

// Backend names accepted by NewReader.
const (
	BackendTaglib = "taglib"
	BackendNative = "native"
)

// NewReader returns the reader for backend. prober is only used by the
// native backend and may be nil there to skip duration probing.
func NewReader(backend string, prober DurationProber) (Reader, error) {
	switch strings.ToLower(backend) {
	case BackendTaglib, "":
		return NewTaglibReader(), nil
	case BackendNative:
		return NewNativeReader(prober), nil
	default:
		return nil, fmt.Errorf("unknown tag reader %q", backend)
	}
}

// artistFromValues maps a multi-valued field onto the Artist sum type.
func artistFromValues(values []string) domain.Artist {
	var names []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			names = append(names, v)
		}
	}
	switch len(names) {
	case 0:
		return domain.NoArtist()
	case 1:
		return domain.SingleArtist(names[0])
	default:
		return domain.MultipleArtists(names...)
	}
}

func first(values []string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func formatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
