// Package sampler produces downsampled video frames at evenly spaced
// timestamps across a source's duration.
package sampler

import (
	"context"
	"image"
	"time"
)

// Sample resolutions. Color extraction only needs a coarse raster; the
// frame-based mode displays the pixels and keeps more of them.
const (
	ColorSampleSize = 32
	FrameSampleSize = 128
)

// Metadata describes a decodable video source.
type Metadata struct {
	Duration time.Duration
	Width    int
	Height   int
}

// Source is the video-decoding collaborator boundary. Frame seeks to the
// timestamp and returns the frame scaled down so its width fits maxSize.
// Seeks are best-effort; decoders may snap to the nearest keyframe.
type Source interface {
	Metadata(ctx context.Context) (Metadata, error)
	Frame(ctx context.Context, at time.Duration, maxSize int) (image.Image, error)
}

// Timestamp spreads n samples evenly across d: sample i lands at i/n of the
// duration, so the first cell shows the opening frame and the last cell sits
// just short of the end.
func Timestamp(i, n int, d time.Duration) time.Duration {
	if n <= 0 || i <= 0 {
		return 0
	}
	return time.Duration(float64(i) / float64(n) * float64(d))
}
