// Package grid computes the cell geometry for the two pattern topologies:
// flat-top hexagonal tiling and vertical linear bands.
package grid

import (
	"fmt"
	"math"
)

// Topology selects the geometric arrangement of cells.
type Topology int

const (
	Hexagonal Topology = iota
	Linear
)

func (t Topology) String() string {
	switch t {
	case Hexagonal:
		return "hexagonal"
	case Linear:
		return "linear"
	}
	return fmt.Sprintf("topology(%d)", int(t))
}

// ParseTopology maps a flag value onto a Topology.
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "hexagonal", "hex":
		return Hexagonal, nil
	case "linear":
		return Linear, nil
	}
	return Hexagonal, fmt.Errorf("unknown topology %q (valid: hexagonal, linear)", s)
}

// Cell is one region of the output grid. For hexagonal layouts CX,CY is the
// center and Size the circumradius. For linear layouts CX is the band's left
// edge, CY is zero and Size is the band width; bands span the canvas height.
type Cell struct {
	Index  int
	CX, CY float64
	Size   float64
}

// Layout returns the ordered cells for the canvas. The row-major order is
// load-bearing: the sampler maps cell index directly to a timestamp. A canvas
// too small for a single cell yields an empty slice.
func Layout(t Topology, width, height, cellSize float64) []Cell {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil
	}
	switch t {
	case Hexagonal:
		return hexLayout(width, height, cellSize)
	case Linear:
		return linearLayout(width, cellSize)
	}
	return nil
}

// hexLayout tiles flat-top hexagons of circumradius size. Odd columns drop by
// half the vertical stride for the brick-like stagger.
func hexLayout(w, h, size float64) []Cell {
	hStride := 1.5 * size
	vStride := size * math.Sqrt(3)
	cols := int(math.Floor(w / hStride))
	rows := int(math.Floor(h / vStride))
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cells := make([]Cell, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cy := size + float64(row)*vStride
			if col%2 == 1 {
				cy += vStride / 2
			}
			cells = append(cells, Cell{
				Index: len(cells),
				CX:    size + float64(col)*hStride,
				CY:    cy,
				Size:  size,
			})
		}
	}
	return cells
}

// linearLayout lays equal-width bands left to right.
func linearLayout(w, size float64) []Cell {
	n := int(math.Floor(w / size))
	if n <= 0 {
		return nil
	}
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Index: i, CX: float64(i) * size, Size: size}
	}
	return cells
}

// HexVertices returns the six corners of a cell's flat-top hexagon.
func HexVertices(c Cell) [][2]float64 {
	pts := make([][2]float64, 6)
	for i := range pts {
		a := math.Pi / 3 * float64(i)
		pts[i] = [2]float64{c.CX + c.Size*math.Cos(a), c.CY + c.Size*math.Sin(a)}
	}
	return pts
}
