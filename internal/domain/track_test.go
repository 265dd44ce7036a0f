package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackRecord_JSONShape(t *testing.T) {
	record := TrackRecord{Path: "song.mp3", Title: "song"}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"path": "song.mp3",
		"title": "song",
		"artist": "",
		"album": "",
		"genre": [],
		"year": null,
		"track": null,
		"duration": 0
	}`, string(data))
}

func TestTrackRecord_ZeroIsNotNull(t *testing.T) {
	record := TrackRecord{Path: "a.mp3", Title: "a", Genre: []string{}, Year: IntPtr(0), Track: IntPtr(0)}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"year":0`)
	assert.Contains(t, string(data), `"track":0`)
}

func TestBatch_RoundTrip(t *testing.T) {
	batch := Batch{
		{
			Path:     "01 - Intro.mp3",
			Title:    "Intro",
			Artist:   "A, B",
			Album:    "Live",
			Genre:    []string{"Rock", "Hip Hop"},
			Year:     IntPtr(1999),
			Track:    IntPtr(1),
			Duration: 183.25,
		},
		{Path: "broken.mp3", Title: "broken", Genre: []string{}},
	}

	data, err := json.Marshal(batch)
	require.NoError(t, err)

	var decoded Batch
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, batch, decoded)
}

func TestBatch_NilMarshalsAsEmptyArray(t *testing.T) {
	var batch Batch

	data, err := json.Marshal(batch)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestArtist_Kinds(t *testing.T) {
	assert.Equal(t, ArtistAbsent, Artist{}.Kind())
	assert.Equal(t, ArtistAbsent, NoArtist().Kind())
	assert.Empty(t, NoArtist().Names())

	single := SingleArtist("Nina Simone")
	assert.Equal(t, ArtistSingle, single.Kind())
	assert.Equal(t, []string{"Nina Simone"}, single.Names())

	names := []string{"A", "B"}
	multi := MultipleArtists(names...)
	names[0] = "changed"
	assert.Equal(t, ArtistMultiple, multi.Kind())
	assert.Equal(t, []string{"A", "B"}, multi.Names())
	assert.Equal(t, "multiple", multi.Kind().String())
}
