package audio

import (
	"context"

	"go.senan.xyz/taglib"

	"github.com/listenupapp/tagexport/internal/normalize"
)

// TaglibReader reads tags through TagLib. It handles every container TagLib
// knows and keeps multi-valued ARTIST and GENRE fields as lists.
type TaglibReader struct{}

// NewTaglibReader creates a TagLib backed reader.
func NewTaglibReader() *TaglibReader {
	return &TaglibReader{}
}

// Read implements Reader.
func (r *TaglibReader) Read(ctx context.Context, path string) (*Tags, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}

	result := &Tags{
		Format: formatFromPath(path),
		Title:  first(tags[taglib.Title]),
		Artist: artistFromValues(tags[taglib.Artist]),
		Album:  first(tags[taglib.Album]),
		Genres: tags[taglib.Genre],
		Year:   normalize.LeadingInt(first(tags[taglib.Date])),
		Track:  normalize.LeadingInt(first(tags[taglib.TrackNumber])),
	}

	// Tags without properties are still worth keeping.
	props, err := taglib.ReadProperties(path)
	if err != nil {
		result.Warnf("read properties: %v", err)
		return result, nil
	}
	if props.Length > 0 {
		result.Duration = props.Length
	}

	return result, nil
}
