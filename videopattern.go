package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"videopattern/pattern"
	"videopattern/render"
	"videopattern/sampler"
)

// generateToFile wires a video source through the generator into a backend
// chosen by the output extension, then encodes the result.
func generateToFile(ctx context.Context, videoPath, outputPath string, cfg pattern.Config, frameTimeout time.Duration) error {
	src := sampler.NewFFmpegSource(videoPath)
	src.FrameTimeout = frameTimeout

	gen := pattern.New()
	lastLogged := -10.0
	gen.OnProgress = func(s pattern.State) {
		switch s.Phase {
		case pattern.PhaseLoadingMetadata:
			log.Println("loading video metadata...")
		case pattern.PhaseSampling:
			if s.PercentComplete-lastLogged >= 10 {
				log.Printf("sampling: %.0f%%", s.PercentComplete)
				lastLogged = s.PercentComplete
			}
		}
	}

	switch ext := strings.ToLower(filepath.Ext(outputPath)); ext {
	case ".png":
		canvas := render.NewRaster(int(cfg.CanvasWidth), int(cfg.CanvasHeight))
		if err := gen.Generate(ctx, src, canvas, cfg); err != nil {
			return err
		}
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		if err := canvas.EncodePNG(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".svg":
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		canvas := render.NewSVG(f, int(cfg.CanvasWidth), int(cfg.CanvasHeight))
		genErr := gen.Generate(ctx, src, canvas, cfg)
		canvas.Close()
		if cerr := f.Close(); genErr == nil {
			genErr = cerr
		}
		return genErr
	default:
		return fmt.Errorf("unsupported output format %q: use .png or .svg", ext)
	}
}
