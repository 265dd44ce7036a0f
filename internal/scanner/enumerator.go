// Package scanner finds candidate audio files in a directory and samples them for preview.
package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/listenupapp/tagexport/internal/errors"
)

// DefaultExtensions is used when an Enumerator is built without extensions.
var DefaultExtensions = []string{".mp3"}

// Enumerator lists the audio files of a single directory.
type Enumerator struct {
	logger     *slog.Logger
	extensions map[string]bool
}

// NewEnumerator creates an enumerator matching the given extensions
// case-insensitively. Extensions may be given with or without the dot.
func NewEnumerator(logger *slog.Logger, extensions []string) *Enumerator {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &Enumerator{logger: logger, extensions: exts}
}

// Matches reports whether name has one of the candidate extensions.
func (e *Enumerator) Matches(name string) bool {
	return e.extensions[strings.ToLower(filepath.Ext(name))]
}

// ListCandidateFiles returns the full paths of matching files directly inside
// dir, in listing order. It does not recurse. Subdirectories are skipped even
// when their name matches.
func (e *Enumerator) ListCandidateFiles(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.DirectoryRead(dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !e.Matches(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if isDir(entry, path) {
			continue
		}
		paths = append(paths, path)
	}

	e.logger.Debug("listed candidate files",
		"directory", dir,
		"entries", len(entries),
		"candidates", len(paths),
	)

	return paths, nil
}

// isDir resolves symlinks so a link to a directory is not taken for a file.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	// A dangling link is left in; the extractor will fall back for it.
	return err == nil && info.IsDir()
}
