package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/tagexport/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestListCandidateFiles_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.mp3")
	b := touch(t, dir, "B.MP3")
	touch(t, dir, "cover.jpg")
	touch(t, dir, "notes.mp3.txt")
	c := touch(t, dir, "c.Mp3")

	enum := NewEnumerator(testLogger(), nil)
	paths, err := enum.ListCandidateFiles(context.Background(), dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a, b, c}, paths)
}

func TestListCandidateFiles_ListingOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"03.mp3", "01.mp3", "02.mp3"}
	for _, name := range names {
		touch(t, dir, name)
	}

	enum := NewEnumerator(testLogger(), nil)
	paths, err := enum.ListCandidateFiles(context.Background(), dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	want := make([]string, 0, len(entries))
	for _, e := range entries {
		want = append(want, filepath.Join(dir, e.Name()))
	}
	assert.Equal(t, want, paths)
}

func TestListCandidateFiles_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album.mp3"), 0o755))
	song := touch(t, dir, "song.mp3")

	enum := NewEnumerator(testLogger(), nil)
	paths, err := enum.ListCandidateFiles(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{song}, paths)
}

func TestListCandidateFiles_DoesNotRecurse(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "disc2")
	require.NoError(t, os.Mkdir(sub, 0o755))
	touch(t, sub, "deep.mp3")

	enum := NewEnumerator(testLogger(), nil)
	paths, err := enum.ListCandidateFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestListCandidateFiles_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	flac := touch(t, dir, "a.FLAC")
	m4a := touch(t, dir, "b.m4a")
	touch(t, dir, "c.mp3")

	enum := NewEnumerator(testLogger(), []string{"flac", ".M4A", " "})
	paths, err := enum.ListCandidateFiles(context.Background(), dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{flac, m4a}, paths)
}

func TestListCandidateFiles_MissingDirectory(t *testing.T) {
	enum := NewEnumerator(testLogger(), nil)
	_, err := enum.ListCandidateFiles(context.Background(), filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDirectoryRead))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestListCandidateFiles_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	enum := NewEnumerator(testLogger(), nil)
	_, err := enum.ListCandidateFiles(context.Background(), locked)
	assert.True(t, errors.Is(err, errors.ErrDirectoryRead))
}

func TestListCandidateFiles_Canceled(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enum := NewEnumerator(testLogger(), nil)
	_, err := enum.ListCandidateFiles(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListCandidateFiles_EmptyDirectory(t *testing.T) {
	enum := NewEnumerator(testLogger(), nil)
	paths, err := enum.ListCandidateFiles(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected 0 paths, got %d", len(paths))
	}
}
