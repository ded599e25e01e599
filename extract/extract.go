// Package extract reduces a sampled frame to a single representative color.
package extract

import (
	"image"

	"videopattern/chroma"
)

// boost lifts the winning pixel's saturation; a single bright pixel reads
// punchier than an average, which muddies toward gray on busy frames.
const boost = 1.2

// Dominant scans every pixel row-major and keeps the one with the greatest
// perceptual luminance. The comparison is strict, so the first pixel in scan
// order wins exact ties. The winner gets the fixed boost unless it is pure
// black.
func Dominant(img image.Image) chroma.RGB {
	bounds := img.Bounds()
	var best chroma.RGB
	bestY := -1.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := chroma.FromColor(img.At(x, y))
			if l := c.Luminance(); l > bestY {
				best, bestY = c, l
			}
		}
	}
	if best.IsBlack() {
		return best
	}
	return best.Boost(boost)
}
