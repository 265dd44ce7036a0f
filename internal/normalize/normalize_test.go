package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listenupapp/tagexport/internal/domain"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"indie rock", "Indie Rock"},
		{"HIP   HOP", "Hip Hop"},
		{"drum'n'bass", "Drum'n'bass"},
		{"électro pop", "Électro Pop"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.input))
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"03 - Song Name.mp3", "Song Name"},
		{"NoNumber.mp3", "NoNumber"},
		{"12-Tight.MP3", "Tight"},
		{"7 -   Spaced  .mp3", "Spaced"},
		{"1999.mp3", "1999"},
		{"Track.flac", "Track.flac"},
		{"Mid 01 - Dash.mp3", "Mid 01 - Dash"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.input))
		})
	}
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "Song", TitleFromFilename("/music/Song.mp3"))
	assert.Equal(t, "Song", TitleFromFilename("Song.MP3"))
	assert.Equal(t, "01 - Intro", TitleFromFilename("/a/b/01 - Intro.flac"))
	assert.Equal(t, "archive.tar", TitleFromFilename("archive.tar.mp3"))
	assert.Equal(t, ".mp3", TitleFromFilename("/music/.mp3"))
}

func TestSanitizeGenres(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "dedupe case and space", input: []string{"rock", "ROCK", " rock ", ""}, want: []string{"Rock"}},
		{name: "keeps first seen order", input: []string{"jazz", "Rock", "JAZZ", "blues"}, want: []string{"Jazz", "Rock", "Blues"}},
		{name: "inner whitespace", input: []string{"hip  hop", "Hip Hop"}, want: []string{"Hip Hop"}},
		{name: "nul bytes", input: []string{"Pop\x00", "\x00"}, want: []string{"Pop"}},
		{name: "composed and decomposed", input: []string{"caf\u00e9", "cafe\u0301"}, want: []string{"Caf\u00e9"}},
		{name: "nil", input: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeGenres(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArtist(t *testing.T) {
	assert.Equal(t, "Björk", Artist(domain.SingleArtist("Björk")))
	assert.Equal(t, "A, B, C", Artist(domain.MultipleArtists("A", "B", "C")))
	assert.Equal(t, "", Artist(domain.MultipleArtists()))
	assert.Equal(t, "", Artist(domain.NoArtist()))
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{"3/12", domain.IntPtr(3)},
		{"07", domain.IntPtr(7)},
		{"2004-06-01", domain.IntPtr(2004)},
		{" 0", domain.IntPtr(0)},
		{"", nil},
		{"track one", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LeadingInt(tt.input))
		})
	}
}

func TestPositiveInt(t *testing.T) {
	assert.Nil(t, PositiveInt(0))
	assert.Nil(t, PositiveInt(-1))
	assert.Equal(t, domain.IntPtr(1987), PositiveInt(1987))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 0.0, Duration(-3))
	assert.Equal(t, 0.0, Duration(math.NaN()))
	assert.Equal(t, 215.5, Duration(215.5))
}

func TestFallback(t *testing.T) {
	record := Fallback("/music/rock/05 - Broken.mp3")

	assert.Equal(t, domain.TrackRecord{
		Path:  "05 - Broken.mp3",
		Title: "05 - Broken",
		Genre: []string{},
	}, record)
}

func TestText(t *testing.T) {
	assert.Equal(t, "Title", Text("  Title\x00 "))
}
