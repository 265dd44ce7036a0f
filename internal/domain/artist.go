package domain

// ArtistKind tells which shape a tag reader found in the artist field.
type ArtistKind int

const (
	ArtistAbsent ArtistKind = iota
	ArtistSingle
	ArtistMultiple
)

// String returns a readable kind name.
func (k ArtistKind) String() string {
	switch k {
	case ArtistSingle:
		return "single"
	case ArtistMultiple:
		return "multiple"
	default:
		return "absent"
	}
}

// Artist is the raw artist value as read from tags: one name, a list of
// names, or nothing. Build it with SingleArtist, MultipleArtists or
// NoArtist; the zero value is NoArtist.
type Artist struct {
	kind  ArtistKind
	names []string
}

// SingleArtist wraps a scalar artist field.
func SingleArtist(name string) Artist {
	return Artist{kind: ArtistSingle, names: []string{name}}
}

// MultipleArtists wraps a list artist field. An empty list is still Multiple.
func MultipleArtists(names ...string) Artist {
	return Artist{kind: ArtistMultiple, names: append([]string(nil), names...)}
}

// NoArtist is the absent artist.
func NoArtist() Artist {
	return Artist{}
}

// Kind reports the shape of the value.
func (a Artist) Kind() ArtistKind {
	return a.kind
}

// Names returns a copy of the names held. Empty for NoArtist.
func (a Artist) Names() []string {
	return append([]string(nil), a.names...)
}
