package audio

import (
	"context"
	"time"

	"github.com/simonhull/audiometa"
)

// DurationProber measures the playback length of a file.
type DurationProber interface {
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// AudiometaProber probes durations with audiometa, which walks the audio
// stream headers (Xing/VBRI for MP3, STREAMINFO for FLAC, mvhd for MP4).
type AudiometaProber struct{}

// Probe implements DurationProber.
func (AudiometaProber) Probe(ctx context.Context, path string) (time.Duration, error) {
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.Audio.Duration, nil
}

// DurationProberFunc adapts a function to DurationProber.
type DurationProberFunc func(ctx context.Context, path string) (time.Duration, error)

// Probe implements DurationProber.
func (f DurationProberFunc) Probe(ctx context.Context, path string) (time.Duration, error) {
	return f(ctx, path)
}
