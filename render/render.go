// Package render draws grid cells onto a backend surface. The Canvas
// interface keeps backends swappable; nothing in it feeds back into the
// generation pipeline, so cells can be drawn progressively mid-run.
package render

import (
	"fmt"
	"image"

	"videopattern/chroma"
	"videopattern/grid"
)

// Canvas is the drawing capability a backend provides. Points are in canvas
// units with the origin at the top-left.
type Canvas interface {
	FillPolygon(pts [][2]float64, c chroma.RGB) error
	DrawImagePolygon(pts [][2]float64, img image.Image) error
	StrokePolygon(pts [][2]float64, c chroma.RGB) error
}

// borderShade darkens the fill slightly for the cell outline.
const borderShade = 0.85

// frameBorder outlines frame-based cells, which have no single fill color.
var frameBorder = chroma.RGB{R: 40, G: 40, B: 40}

// CellPolygon returns a cell's outline: a flat-top hexagon, or the full-height
// band rectangle for linear layouts.
func CellPolygon(t grid.Topology, cell grid.Cell, canvasHeight float64) [][2]float64 {
	if t == grid.Linear {
		x, w := cell.CX, cell.Size
		return [][2]float64{{x, 0}, {x + w, 0}, {x + w, canvasHeight}, {x, canvasHeight}}
	}
	return grid.HexVertices(cell)
}

// DrawColorCell fills one cell with a flat color and strokes a faint border.
func DrawColorCell(cv Canvas, t grid.Topology, cell grid.Cell, canvasHeight float64, c chroma.RGB) error {
	pts := CellPolygon(t, cell, canvasHeight)
	if err := cv.FillPolygon(pts, c); err != nil {
		return fmt.Errorf("fill cell %d: %w", cell.Index, err)
	}
	if err := cv.StrokePolygon(pts, c.Boost(borderShade)); err != nil {
		return fmt.Errorf("stroke cell %d: %w", cell.Index, err)
	}
	return nil
}

// DrawFrameCell draws the sampled frame clipped to one cell.
func DrawFrameCell(cv Canvas, t grid.Topology, cell grid.Cell, canvasHeight float64, frame image.Image) error {
	pts := CellPolygon(t, cell, canvasHeight)
	if err := cv.DrawImagePolygon(pts, frame); err != nil {
		return fmt.Errorf("draw frame into cell %d: %w", cell.Index, err)
	}
	if err := cv.StrokePolygon(pts, frameBorder); err != nil {
		return fmt.Errorf("stroke cell %d: %w", cell.Index, err)
	}
	return nil
}
