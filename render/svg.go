package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/gotranspile/gotrace"
	rsvg "github.com/rustyoz/svg"

	"videopattern/chroma"
	"videopattern/extract"
)

// SVG renders the pattern as a vector document. Frame-based cells are
// vectorized: the frame's luminance mask is traced to paths, placed inside
// the cell and tinted with the frame's dominant color.
type SVG struct {
	doc           *svgo.SVG
	width, height int
	closed        bool
}

// NewSVG starts a document on w with a white background.
func NewSVG(w io.Writer, width, height int) *SVG {
	doc := svgo.New(w)
	doc.Start(width, height)
	doc.Rect(0, 0, width, height, "fill:#ffffff")
	return &SVG{doc: doc, width: width, height: height}
}

// Close finalizes the document. Drawing after Close is an error.
func (s *SVG) Close() {
	if !s.closed {
		s.doc.End()
		s.closed = true
	}
}

func coords(pts [][2]float64) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = int(math.Round(p[0]))
		ys[i] = int(math.Round(p[1]))
	}
	return xs, ys
}

func (s *SVG) FillPolygon(pts [][2]float64, c chroma.RGB) error {
	if s.closed {
		return fmt.Errorf("svg canvas closed")
	}
	xs, ys := coords(pts)
	s.doc.Polygon(xs, ys, "fill:"+c.Hex())
	return nil
}

func (s *SVG) StrokePolygon(pts [][2]float64, c chroma.RGB) error {
	if s.closed {
		return fmt.Errorf("svg canvas closed")
	}
	xs, ys := coords(pts)
	s.doc.Polygon(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:0.4;stroke-width:1", c.Hex()))
	return nil
}

// DrawImagePolygon traces the frame into vector paths and fits them to the
// polygon's bounding box. Rasters cannot be embedded in a standalone SVG
// without base64 bloat; a tinted trace keeps the document small and scalable.
func (s *SVG) DrawImagePolygon(pts [][2]float64, img image.Image) error {
	if s.closed {
		return fmt.Errorf("svg canvas closed")
	}
	svgData, err := traceFrame(img)
	if err != nil {
		return fmt.Errorf("trace frame: %w", err)
	}
	paths := extractPaths(svgData)
	if len(paths) == 0 {
		// A uniform bright frame traces to nothing; fall back to its color.
		return s.FillPolygon(pts, extract.Dominant(img))
	}
	vbW, vbH, err := viewBoxSize(svgData)
	if err != nil {
		return fmt.Errorf("trace frame: %w", err)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}
	sc := math.Min((maxX-minX)/vbW, (maxY-minY)/vbH)
	tx := minX + ((maxX-minX)-vbW*sc)/2
	ty := minY + ((maxY-minY)-vbH*sc)/2

	tint := extract.Dominant(img)
	s.doc.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) scale(%.4f)", tx, ty, sc))
	for _, d := range paths {
		s.doc.Path(d, "fill:"+tint.Hex())
	}
	s.doc.Gend()
	return nil
}

// traceFrame thresholds the frame by luminance and traces the dark regions.
func traceFrame(img image.Image) (string, error) {
	mask := luminanceMask(img)
	bm := gotrace.BitmapFromGray(mask, nil)
	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	sz := mask.Bounds().Size()
	if err := gotrace.Render("svg", nil, &buf, paths, sz.X, sz.Y); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// luminanceMask marks pixels darker than the midpoint as the traced shape
// (black) and everything else as background (white).
func luminanceMask(img image.Image) *image.Gray {
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := uint8(255)
			if chroma.FromColor(img.At(x, y)).Luminance() < 128 {
				v = 0
			}
			mask.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return mask
}

// extractPaths pulls every <path d> from the traced SVG. gotrace nests its
// paths either at the top level or inside a group depending on options.
func extractPaths(svgData string) []string {
	type path struct {
		D string `xml:"d,attr"`
	}
	type doc struct {
		Paths  []path `xml:"path"`
		Nested []path `xml:"g>path"`
	}

	var d doc
	if err := xml.Unmarshal([]byte(svgData), &d); err != nil {
		return nil
	}
	out := make([]string, 0, len(d.Paths)+len(d.Nested))
	for _, p := range d.Paths {
		out = append(out, p.D)
	}
	for _, p := range d.Nested {
		out = append(out, p.D)
	}
	return out
}

// viewBoxSize reads the traced document's viewBox extent.
func viewBoxSize(svgData string) (w, h float64, err error) {
	parsed, err := rsvg.ParseSvg(svgData, "frame", 1.0)
	if err != nil {
		return 0, 0, fmt.Errorf("parse traced svg: %w", err)
	}
	fields := strings.Fields(parsed.ViewBox)
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("malformed viewBox %q", parsed.ViewBox)
	}
	w, werr := strconv.ParseFloat(fields[2], 64)
	h, herr := strconv.ParseFloat(fields[3], 64)
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("malformed viewBox %q", parsed.ViewBox)
	}
	return w, h, nil
}
