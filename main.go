package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"videopattern/filter"
	"videopattern/grid"
	"videopattern/pattern"
	"videopattern/sampler"
)

func main() {
	videoPath := flag.String("video", "", "input video file")
	output := flag.String("output", "pattern.png", "output file, .png or .svg")
	topologyStr := flag.String("topology", "hexagonal", "grid topology: hexagonal or linear")
	filterStr := flag.String("filter", "none", "color filter: none, frame, vibrant, dynamic, contrast, neon, gradient-flow")
	cellSize := flag.Float64("cellsize", pattern.DefaultCellSize, "cell size in canvas units")
	width := flag.Float64("width", pattern.DefaultCanvasWidth, "canvas width")
	height := flag.Float64("height", pattern.DefaultCanvasHeight, "canvas height")
	frameTimeout := flag.Duration("frame-timeout", sampler.DefaultFrameTimeout, "per-frame decode timeout")

	help := flag.Bool("help", false, "show usage")
	flag.Parse()
	if *help {
		flag.Usage()
		return
	}
	if *videoPath == "" {
		flag.Usage()
		return
	}

	topology, err := grid.ParseTopology(*topologyStr)
	if err != nil {
		log.Fatal(err)
	}
	kind, err := filter.ParseKind(*filterStr)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := pattern.Config{
		Topology:     topology,
		Filter:       kind,
		CanvasWidth:  *width,
		CanvasHeight: *height,
		CellSize:     *cellSize,
	}
	if err := generateToFile(ctx, *videoPath, *output, cfg, *frameTimeout); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", *output)
}
