package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/listenupapp/tagexport/internal/normalize"
)

// id3Frames are the only frames parsed from ID3v2 tags. APIC is left out so
// cover art is never loaded.
var id3Frames = []string{
	"Title",
	"Artist",
	"Album/Movie/Show title",
	"Content type",
	"Year",
	"Recording time",
	"Track number/Position in set",
}

// genreRef matches ID3v1 style references like "(17)" in TCON.
var genreRef = regexp.MustCompile(`^\((\d+)\)`)

// NativeReader reads tags with pure Go libraries: bogem/id3v2 for MP3,
// go-flac for FLAC and dhowden/tag for everything else. Durations come from
// the prober since none of the tag libraries decode stream headers.
type NativeReader struct {
	prober DurationProber
}

// NewNativeReader creates a native reader. A nil prober leaves durations at 0.
func NewNativeReader(prober DurationProber) *NativeReader {
	return &NativeReader{prober: prober}
}

// Read implements Reader.
func (r *NativeReader) Read(ctx context.Context, path string) (*Tags, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		tags *Tags
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		tags, err = readMP3(path)
	case ".flac":
		tags, err = readFLAC(path)
	default:
		tags, err = readGeneric(path)
	}
	if errors.Is(err, tag.ErrNoTagsFound) {
		return r.untagged(ctx, path, err)
	}
	if err != nil {
		return nil, err
	}

	r.probeDuration(ctx, path, tags)
	return tags, nil
}

func (r *NativeReader) probeDuration(ctx context.Context, path string, tags *Tags) {
	if r.prober == nil {
		return
	}
	d, err := r.prober.Probe(ctx, path)
	if err != nil {
		tags.Warnf("probe duration: %v", err)
		return
	}
	if d > 0 {
		tags.Duration = d
	}
}

func readMP3(path string) (*Tags, error) {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: id3Frames})
	if err != nil {
		return nil, fmt.Errorf("parse id3v2: %w", err)
	}
	defer id3.Close()

	if id3.Count() > 0 {
		return tagsFromID3v2(id3), nil
	}

	// No ID3v2 frames. dhowden/tag also understands ID3v1 trailers.
	return readGeneric(path)
}

// untagged accepts a file without any tags when its audio stream can be
// measured. Otherwise the original error stands.
func (r *NativeReader) untagged(ctx context.Context, path string, cause error) (*Tags, error) {
	if r.prober == nil {
		return nil, cause
	}
	d, err := r.prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w; probe: %w", cause, err)
	}
	return &Tags{Format: formatFromPath(path), Duration: d}, nil
}

func tagsFromID3v2(t *id3v2.Tag) *Tags {
	year := t.Year()
	if year == "" {
		year = t.GetTextFrame(t.CommonID("Recording time")).Text
	}

	return &Tags{
		Format: "mp3",
		Title:  normalize.Text(t.Title()),
		Artist: artistFromValues(splitID3(t.Artist())),
		Album:  normalize.Text(t.Album()),
		Genres: id3Genres(t.Genre()),
		Year:   normalize.LeadingInt(normalize.Text(year)),
		Track:  normalize.LeadingInt(normalize.Text(t.GetTextFrame(t.CommonID("Track number/Position in set")).Text)),
	}
}

// splitID3 splits ID3v2.4 multi-value text on NUL separators.
func splitID3(text string) []string {
	return strings.Split(text, "\x00")
}

// id3Genres splits TCON and drops "(n)" references that precede a name.
func id3Genres(tcon string) []string {
	var out []string
	for _, g := range splitID3(tcon) {
		if loc := genreRef.FindStringIndex(g); loc != nil && loc[1] < len(g) {
			g = g[loc[1]:]
		}
		out = append(out, g)
	}
	return out
}

func readFLAC(path string) (*Tags, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse flac: %w", err)
	}

	fields := make(map[string][]string)
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			return nil, fmt.Errorf("parse vorbis comment: %w", err)
		}
		for _, comment := range cmt.Comments {
			key, value, ok := strings.Cut(comment, "=")
			if !ok {
				continue
			}
			key = strings.ToUpper(key)
			fields[key] = append(fields[key], value)
		}
	}

	return &Tags{
		Format: "flac",
		Title:  first(fields[flacvorbis.FIELD_TITLE]),
		Artist: artistFromValues(fields[flacvorbis.FIELD_ARTIST]),
		Album:  first(fields[flacvorbis.FIELD_ALBUM]),
		Genres: fields[flacvorbis.FIELD_GENRE],
		Year:   normalize.LeadingInt(first(fields[flacvorbis.FIELD_DATE])),
		Track:  normalize.LeadingInt(first(fields[flacvorbis.FIELD_TRACKNUMBER])),
	}, nil
}

func readGeneric(path string) (*Tags, error) {
	f, err := os.Open(path) //#nosec G304 -- path comes from the enumerator
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, err
		}
		return nil, &UnsupportedFormatError{Path: path, Reason: err.Error()}
	}

	track, _ := m.Track()
	result := &Tags{
		Format: strings.ToLower(string(m.FileType())),
		Title:  normalize.Text(m.Title()),
		Artist: artistFromValues([]string{m.Artist()}),
		Album:  normalize.Text(m.Album()),
		Year:   normalize.PositiveInt(m.Year()),
		Track:  normalize.PositiveInt(track),
	}
	if g := m.Genre(); g != "" {
		result.Genres = []string{g}
	}
	if result.Format == "" {
		result.Format = formatFromPath(path)
	}
	return result, nil
}
