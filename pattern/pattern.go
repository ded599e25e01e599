// Package pattern orchestrates grid layout, frame sampling, color extraction
// and filtering into a finished canvas. One generation runs at a time per
// Generator; starting a new run supersedes the in-flight one.
package pattern

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"videopattern/chroma"
	"videopattern/extract"
	"videopattern/filter"
	"videopattern/grid"
	"videopattern/render"
	"videopattern/sampler"
)

// Terminal failures for a generation run. None are retried.
var (
	ErrMetadataFailure = errors.New("video metadata unavailable")
	ErrDecodeFailure   = errors.New("frame decode failed")
	ErrSurfaceFailure  = errors.New("drawing surface unavailable")
)

// Phase tracks where a generation run is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoadingMetadata
	PhaseSampling
	PhaseDone
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadingMetadata:
		return "loading-metadata"
	case PhaseSampling:
		return "sampling"
	case PhaseDone:
		return "done"
	case PhaseError:
		return "error"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// State is a progress snapshot. Observers always receive copies; only the
// generator mutates the live value.
type State struct {
	Phase           Phase
	PercentComplete float64
	Err             error
}

// Default canvas geometry.
const (
	DefaultCanvasWidth  = 1000
	DefaultCanvasHeight = 600
	DefaultCellSize     = 40
)

// Config selects the topology and filter for one run. Zero-valued dimensions
// fall back to the defaults.
type Config struct {
	Topology     grid.Topology
	Filter       filter.Kind
	CanvasWidth  float64
	CanvasHeight float64
	CellSize     float64
}

func (c Config) withDefaults() Config {
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = DefaultCanvasWidth
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = DefaultCanvasHeight
	}
	if c.CellSize <= 0 {
		c.CellSize = DefaultCellSize
	}
	return c
}

// Generator drives the generation state machine:
//
//	idle → loading-metadata → sampling → done
//
// with error reachable from loading-metadata and sampling, and cancellation
// (back to idle) from any non-terminal state.
type Generator struct {
	// OnProgress, when set, observes every state change. It is called from
	// the generating goroutine; keep it cheap.
	OnProgress func(State)

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	runID  int
}

// New returns an idle Generator.
func New() *Generator {
	return &Generator{}
}

// State returns the current progress snapshot.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Cancel abandons the in-flight run, if any. Cancellation is silent: it is
// not an error and emits no further progress.
func (g *Generator) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
}

// publish records a state change and notifies the observer, unless a newer
// run has taken over.
func (g *Generator) publish(id int, s State) {
	g.mu.Lock()
	if id != g.runID {
		g.mu.Unlock()
		return
	}
	g.state = s
	cb := g.OnProgress
	g.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}

// abandon drops back to idle without emitting progress. Partial canvas output
// stays in place.
func (g *Generator) abandon(id int, err error) error {
	g.mu.Lock()
	if id == g.runID {
		g.state = State{Phase: PhaseIdle}
	}
	g.mu.Unlock()
	return err
}

// fail moves to the error phase, keeping the last reported percentage.
func (g *Generator) fail(id int, err error) error {
	g.mu.Lock()
	pct := g.state.PercentComplete
	g.mu.Unlock()
	g.publish(id, State{Phase: PhaseError, PercentComplete: pct, Err: err})
	return err
}

// Generate runs one full generation: probe metadata, lay out the grid, then
// sample/extract/filter/render each cell in ascending index order. Cells are
// strictly sequential: the source exposes a single current-frame view and the
// temporal filter needs the previous cell's output.
func (g *Generator) Generate(ctx context.Context, src sampler.Source, canvas render.Canvas, cfg Config) error {
	cfg = cfg.withDefaults()

	g.mu.Lock()
	if g.cancel != nil {
		g.cancel() // a new request supersedes the in-flight run
	}
	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.runID++
	id := g.runID
	g.state = State{Phase: PhaseLoadingMetadata}
	g.mu.Unlock()
	defer cancel()

	g.publish(id, State{Phase: PhaseLoadingMetadata})

	md, err := src.Metadata(ctx)
	if ctx.Err() != nil {
		return g.abandon(id, ctx.Err())
	}
	if err != nil {
		return g.fail(id, fmt.Errorf("%w: %v", ErrMetadataFailure, err))
	}

	cells := grid.Layout(cfg.Topology, cfg.CanvasWidth, cfg.CanvasHeight, cfg.CellSize)
	if len(cells) == 0 {
		// Canvas too small for a single cell: a valid empty run.
		g.publish(id, State{Phase: PhaseDone, PercentComplete: 100})
		return nil
	}

	g.publish(id, State{Phase: PhaseSampling})

	maxSize := sampler.ColorSampleSize
	if cfg.Filter.FrameBased() {
		maxSize = sampler.FrameSampleSize
	}

	// history holds each cell's filtered output in order; only the last
	// entry feeds the temporal filter. Run-local, cleared by construction.
	history := make([]chroma.RGB, 0, len(cells))

	for i, cell := range cells {
		frame, err := src.Frame(ctx, sampler.Timestamp(i, len(cells), md.Duration), maxSize)
		if ctx.Err() != nil {
			return g.abandon(id, ctx.Err())
		}
		if err != nil {
			return g.fail(id, fmt.Errorf("cell %d: %w: %v", i, ErrDecodeFailure, err))
		}

		if cfg.Filter.FrameBased() {
			err = render.DrawFrameCell(canvas, cfg.Topology, cell, cfg.CanvasHeight, frame)
		} else {
			var prev *chroma.RGB
			if n := len(history); n > 0 {
				prev = &history[n-1]
			}
			out := filter.Apply(cfg.Filter, extract.Dominant(frame), prev)
			history = append(history, out)
			err = render.DrawColorCell(canvas, cfg.Topology, cell, cfg.CanvasHeight, out)
		}
		if err != nil {
			return g.fail(id, fmt.Errorf("%w: %v", ErrSurfaceFailure, err))
		}
		// frame drops out of scope here; nothing is retained across cells.

		g.publish(id, State{
			Phase:           PhaseSampling,
			PercentComplete: float64(i+1) / float64(len(cells)) * 100,
		})
	}

	g.publish(id, State{Phase: PhaseDone, PercentComplete: 100})
	return nil
}
