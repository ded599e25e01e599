package sampler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DefaultFrameTimeout bounds a single seek+decode. A stalled source surfaces
// as a decode failure instead of hanging the run.
const DefaultFrameTimeout = 10 * time.Second

// FFmpegSource reads frames from a video file through ffmpeg and ffprobe.
type FFmpegSource struct {
	Path string

	// FrameTimeout overrides DefaultFrameTimeout when positive.
	FrameTimeout time.Duration

	// ErrOut receives ffmpeg's stderr; nil discards it.
	ErrOut io.Writer
}

// NewFFmpegSource builds a source for the video at path.
func NewFFmpegSource(path string) *FFmpegSource {
	return &FFmpegSource{Path: path, FrameTimeout: DefaultFrameTimeout}
}

// videoProbe mirrors the ffprobe JSON fields we read. Durations arrive as
// decimal-second strings.
type videoProbe struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Duration  string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Metadata probes the file for its duration and pixel dimensions. A source
// that cannot report a positive duration or a video stream is unusable.
func (s *FFmpegSource) Metadata(ctx context.Context) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	probeStr, err := ffmpeg.Probe(s.Path)
	if err != nil {
		return Metadata{}, fmt.Errorf("ffprobe %s: %w", s.Path, err)
	}
	return parseProbe(probeStr)
}

func parseProbe(probeStr string) (Metadata, error) {
	var probe videoProbe
	if err := json.Unmarshal([]byte(probeStr), &probe); err != nil {
		return Metadata{}, fmt.Errorf("parse probe output: %w", err)
	}

	md := Metadata{Duration: parseSeconds(probe.Format.Duration)}
	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		md.Width, md.Height = stream.Width, stream.Height
		if md.Duration == 0 {
			// Some containers only carry the duration on the stream.
			md.Duration = parseSeconds(stream.Duration)
		}
		break
	}
	if md.Width <= 0 || md.Height <= 0 {
		return Metadata{}, errors.New("no video stream found")
	}
	if md.Duration <= 0 {
		return Metadata{}, errors.New("video duration unavailable")
	}
	return md, nil
}

func parseSeconds(s string) time.Duration {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

// Frame seeks to the timestamp and decodes a single PNG-encoded frame scaled
// down to maxSize width. The input-side -ss keeps the seek fast; accuracy is
// whatever the decoder gives us.
func (s *FFmpegSource) Frame(ctx context.Context, at time.Duration, maxSize int) (image.Image, error) {
	timeout := s.FrameTimeout
	if timeout <= 0 {
		timeout = DefaultFrameTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errOut := s.ErrOut
	if errOut == nil {
		errOut = io.Discard
	}

	var buf bytes.Buffer
	cmd := ffmpeg.Input(s.Path, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", at.Seconds())}).
		Output("pipe:1", ffmpeg.KwArgs{
			"vframes": 1,
			"format":  "image2",
			"vcodec":  "png",
			"vf":      fmt.Sprintf("scale=%d:-1", maxSize),
		}).
		WithOutput(&buf).
		WithErrorOutput(errOut)
	cmd.Context = ctx

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("extract frame at %s: %w", at, err)
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode frame at %s: %w", at, err)
	}
	return img, nil
}
