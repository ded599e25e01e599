package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"

	"videopattern/chroma"
)

// Raster renders into an in-memory RGBA image and encodes to PNG.
type Raster struct {
	img *image.RGBA
}

// NewRaster creates a white canvas of the given pixel size.
func NewRaster(width, height int) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Raster{img: img}
}

// Image exposes the backing raster for readback.
func (r *Raster) Image() *image.RGBA { return r.img }

// EncodePNG writes the canvas as a PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

// FillPolygon flood-fills the polygon interior.
func (r *Raster) FillPolygon(pts [][2]float64, c chroma.RGB) error {
	mask, origin := polygonMask(pts)
	if mask == nil {
		return nil
	}
	rect := image.Rectangle{Min: origin, Max: origin.Add(mask.Bounds().Size())}
	draw.DrawMask(r.img, rect, image.NewUniform(c.RGBA()), image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// DrawImagePolygon scales src to cover the polygon's bounding box, centered
// and aspect-preserving, then draws it clipped to the polygon.
func (r *Raster) DrawImagePolygon(pts [][2]float64, src image.Image) error {
	mask, origin := polygonMask(pts)
	if mask == nil {
		return nil
	}
	b := mask.Bounds()
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return nil
	}

	cover := math.Max(float64(b.Dx())/float64(sb.Dx()), float64(b.Dy())/float64(sb.Dy()))
	dw := int(math.Ceil(float64(sb.Dx()) * cover))
	dh := int(math.Ceil(float64(sb.Dy()) * cover))
	dx := (b.Dx() - dw) / 2
	dy := (b.Dy() - dh) / 2

	scaled := image.NewRGBA(b)
	xdraw.ApproxBiLinear.Scale(scaled, image.Rect(dx, dy, dx+dw, dy+dh), src, sb, xdraw.Src, nil)

	rect := image.Rectangle{Min: origin, Max: origin.Add(b.Size())}
	draw.DrawMask(r.img, rect, scaled, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// StrokePolygon draws a one-pixel outline along the polygon edges.
func (r *Raster) StrokePolygon(pts [][2]float64, c chroma.RGB) error {
	if len(pts) == 0 {
		return nil
	}
	col := c.RGBA()
	for i := range pts {
		drawLine(r.img, pts[i], pts[(i+1)%len(pts)], col)
	}
	return nil
}

func drawLine(img *image.RGBA, p, q [2]float64, col color.RGBA) {
	steps := int(math.Ceil(math.Hypot(q[0]-p[0], q[1]-p[1])))
	if steps == 0 {
		img.Set(int(p[0]+0.5), int(p[1]+0.5), col)
		return
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		img.Set(int(p[0]+(q[0]-p[0])*t+0.5), int(p[1]+(q[1]-p[1])*t+0.5), col)
	}
}

// polygonMask rasterizes the polygon into an alpha mask over its bounding
// box. The returned origin places the mask on the canvas. Degenerate
// polygons yield a nil mask.
func polygonMask(pts [][2]float64) (*image.Alpha, image.Point) {
	if len(pts) < 3 {
		return nil, image.Point{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	w := int(math.Ceil(maxX)) - x0
	h := int(math.Ceil(maxY)) - y0
	if w <= 0 || h <= 0 {
		return nil, image.Point{}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if insidePolygon(pts, float64(x0+x)+0.5, float64(y0+y)+0.5) {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask, image.Pt(x0, y0)
}

// insidePolygon applies the even-odd ray rule.
func insidePolygon(pts [][2]float64, x, y float64) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		xi, yi := pts[i][0], pts[i][1]
		xj, yj := pts[j][0], pts[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}
