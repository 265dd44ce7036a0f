package service

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/listenupapp/tagexport/internal/errors"
)

// DirectoryEntry is one subdirectory in a listing.
type DirectoryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Listing is the set of subdirectories of Path.
type Listing struct {
	Path    string           `json:"path"`
	Parent  string           `json:"parent,omitempty"`
	Entries []DirectoryEntry `json:"entries"`
	IsRoot  bool             `json:"isRoot"`
}

// Browse lists the visible subdirectories of path so a caller can choose an
// output directory. An empty path starts at the session's last directory,
// then the home directory.
func (s *LibraryService) Browse(ctx context.Context, path string) (*Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path == "" {
		path = s.session.LastDirectory()
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			path = string(filepath.Separator)
		} else {
			path = home
		}
	}

	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Validationf("invalid path %q", path)
		}
		path = abs
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("directory %q not found", path)
		}
		return nil, errors.DirectoryRead(path, err)
	}
	if !info.IsDir() {
		return nil, errors.Validationf("%q is not a directory", path)
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.DirectoryRead(path, err)
	}

	entries := make([]DirectoryEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		entries = append(entries, DirectoryEntry{Name: name, Path: filepath.Join(path, name)})
	}

	slices.SortFunc(entries, func(a, b DirectoryEntry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	parent := filepath.Dir(path)
	isRoot := parent == path
	if isRoot {
		parent = ""
	}

	return &Listing{Path: path, Parent: parent, Entries: entries, IsRoot: isRoot}, nil
}
