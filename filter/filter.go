// Package filter implements the per-cell color transforms. All transforms
// are pure; the gradient-flow dependency on the previous cell's output is
// threaded in explicitly by the caller instead of being kept as filter state.
package filter

import (
	"fmt"
	"math"

	"videopattern/chroma"
)

// Kind enumerates the closed set of filters.
type Kind int

const (
	None Kind = iota
	Frame
	Vibrant
	Dynamic
	Contrast
	Neon
	GradientFlow
)

var kindNames = map[Kind]string{
	None:         "none",
	Frame:        "frame",
	Vibrant:      "vibrant",
	Dynamic:      "dynamic",
	Contrast:     "contrast",
	Neon:         "neon",
	GradientFlow: "gradient-flow",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("filter(%d)", int(k))
}

// ParseKind maps a flag value onto a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown filter %q (valid: none, frame, vibrant, dynamic, contrast, neon, gradient-flow)", s)
}

// Temporal reports whether the filter consults the previous cell's output.
func (k Kind) Temporal() bool { return k == GradientFlow }

// FrameBased reports whether cells draw the sampled frame itself rather than
// an extracted color. Frame-based cells never reach Apply with pixel data.
func (k Kind) FrameBased() bool { return k == Frame }

// Apply runs one filter step on a candidate color. prev is the immediately
// preceding cell's filtered output; only GradientFlow reads it.
func Apply(k Kind, c chroma.RGB, prev *chroma.RGB) chroma.RGB {
	switch k {
	case Vibrant:
		return vibrant(c)
	case Dynamic:
		return dynamic(c)
	case Contrast:
		return contrast(c)
	case Neon:
		return neon(c)
	case GradientFlow:
		return gradientFlow(c, prev)
	}
	// None and Frame pass through.
	return c
}

// vibrant: saturation push, then a brightness lift, stronger for dark colors.
func vibrant(c chroma.RGB) chroma.RGB {
	out := c.SaturationPush()
	if out.Mean() < 127.5 {
		return out.Boost(1.4)
	}
	return out.Boost(1.1)
}

// dynamic: contrast stretch of each channel's deviation from the 128 midpoint.
func dynamic(c chroma.RGB) chroma.RGB {
	f := 0.8
	if c.Mean() > 127.5 {
		f = 1.3
	}
	stretch := func(ch int) int {
		return int(math.Round(128 + (float64(ch)-128)*f))
	}
	return chroma.RGB{R: stretch(c.R), G: stretch(c.G), B: stretch(c.B)}.Clamp()
}

// contrast: channels above the 128 threshold are amplified, the rest divided
// down. Division keeps channels >= 0, so only the upper clamp matters.
func contrast(c chroma.RGB) chroma.RGB {
	th := func(ch int) int {
		if ch > 128 {
			return int(math.Round(float64(ch) * 1.4))
		}
		return int(math.Round(float64(ch) / 1.4))
	}
	return chroma.RGB{R: th(c.R), G: th(c.G), B: th(c.B)}.Clamp()
}

// neon: hard boost on the dominant channel, hard suppression on the rest.
func neon(c chroma.RGB) chroma.RGB {
	f := [3]float64{0.6, 0.6, 0.6}
	f[c.Dominant()] = 1.5
	return chroma.RGB{
		R: int(math.Round(float64(c.R) * f[0])),
		G: int(math.Round(float64(c.G) * f[1])),
		B: int(math.Round(float64(c.B) * f[2])),
	}.Clamp()
}

// gradientFlow: exponential smoothing of the saturation-pushed candidate
// against the previous cell's output (decay 0.3). The previous output was
// already pushed when it was produced, so it blends in as-is. The first cell
// of a run has no previous output and passes the pushed candidate through.
func gradientFlow(c chroma.RGB, prev *chroma.RGB) chroma.RGB {
	pushed := c.SaturationPush()
	if prev == nil {
		return pushed
	}
	blend := func(a, b int) int {
		return int(math.Round(0.7*float64(a) + 0.3*float64(b)))
	}
	return chroma.RGB{
		R: blend(pushed.R, prev.R),
		G: blend(pushed.G, prev.G),
		B: blend(pushed.B, prev.B),
	}.Clamp()
}
