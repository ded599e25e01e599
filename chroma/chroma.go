// Package chroma implements the RGB color model shared by the pattern
// pipeline: 8-bit integer channels, hex round-tripping and the photometric
// helpers the filters build on.
package chroma

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color with channels in [0,255] and no alpha. Every
// transform clamps on the way out, so values stay in range.
type RGB struct {
	R, G, B int
}

// New builds a clamped RGB.
func New(r, g, b int) RGB {
	return RGB{R: r, G: g, B: b}.Clamp()
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Clamp forces every channel into [0,255].
func (c RGB) Clamp() RGB {
	return RGB{R: clamp255(c.R), G: clamp255(c.G), B: clamp255(c.B)}
}

// Hex renders the color as "#rrggbb".
func (c RGB) Hex() string {
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return col.Hex()
}

func (c RGB) String() string { return c.Hex() }

// ParseHex parses "#rrggbb" (and "#rgb") into an RGB.
func ParseHex(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse hex color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// Luminance is the perceptual brightness 0.299R + 0.587G + 0.114B on the
// 0..255 scale.
func (c RGB) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Mean is the plain channel average.
func (c RGB) Mean() float64 {
	return float64(c.R+c.G+c.B) / 3
}

// IsBlack reports whether all channels are zero.
func (c RGB) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func scale(ch int, f float64) int {
	return int(math.Round(float64(ch) * f))
}

// Boost scales every channel by f, rounding to nearest, clamped.
func (c RGB) Boost(f float64) RGB {
	return RGB{R: scale(c.R, f), G: scale(c.G, f), B: scale(c.B, f)}.Clamp()
}

// Dominant returns 0, 1 or 2 for the largest of R, G, B. Strict comparison,
// so on exact ties the earlier channel wins.
func (c RGB) Dominant() int {
	d, v := 0, c.R
	if c.G > v {
		d, v = 1, c.G
	}
	if c.B > v {
		d = 2
	}
	return d
}

// SaturationPush boosts the dominant channel by 1.3 and suppresses the other
// two by 0.7. This is vibrant's first stage and the gradient-flow push.
func (c RGB) SaturationPush() RGB {
	f := [3]float64{0.7, 0.7, 0.7}
	f[c.Dominant()] = 1.3
	return RGB{R: scale(c.R, f[0]), G: scale(c.G, f[1]), B: scale(c.B, f[2])}.Clamp()
}

// RGBA bridges to image/color with full opacity.
func (c RGB) RGBA() color.RGBA {
	cc := c.Clamp()
	return color.RGBA{R: uint8(cc.R), G: uint8(cc.G), B: uint8(cc.B), A: 255}
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(col color.Color) RGB {
	r, g, b, _ := col.RGBA()
	return RGB{R: int(r >> 8), G: int(g >> 8), B: int(b >> 8)}
}
