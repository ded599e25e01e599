package chroma

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want RGB
	}{
		{"in range", RGB{10, 20, 30}, RGB{10, 20, 30}},
		{"over", RGB{300, 256, 999}, RGB{255, 255, 255}},
		{"under", RGB{-1, -100, 0}, RGB{0, 0, 0}},
		{"mixed", RGB{-5, 128, 400}, RGB{0, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []RGB{{0, 0, 0}, {255, 255, 255}, {1, 2, 3}, {200, 50, 10}, {127, 128, 129}} {
		got, err := ParseHex(c.Hex())
		require.NoError(t, err)
		assert.Equal(t, c, got, "round trip of %s", c.Hex())
	}
}

func TestHexFormat(t *testing.T) {
	assert.Equal(t, "#c83209", RGB{200, 50, 9}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
	assert.Equal(t, "#ffffff", RGB{255, 255, 255}.Hex())
}

func TestParseHexInvalid(t *testing.T) {
	_, err := ParseHex("not-a-color")
	assert.Error(t, err)
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 255, RGB{255, 255, 255}.Luminance(), 1e-9)
	assert.InDelta(t, 0, RGB{}.Luminance(), 1e-9)
	// green weighs most, blue least
	assert.Greater(t, RGB{0, 100, 0}.Luminance(), RGB{100, 0, 0}.Luminance())
	assert.Greater(t, RGB{100, 0, 0}.Luminance(), RGB{0, 0, 100}.Luminance())
	assert.InDelta(t, 0.299*200+0.587*50+0.114*10, RGB{200, 50, 10}.Luminance(), 1e-9)
}

func TestBoost(t *testing.T) {
	assert.Equal(t, RGB{120, 120, 120}, RGB{100, 100, 100}.Boost(1.2))
	assert.Equal(t, RGB{255, 255, 255}, RGB{250, 250, 250}.Boost(1.2))
	// rounds to nearest
	assert.Equal(t, RGB{6, 1, 0}, RGB{5, 1, 0}.Boost(1.2))
}

func TestDominant(t *testing.T) {
	tests := []struct {
		c    RGB
		want int
	}{
		{RGB{200, 50, 10}, 0},
		{RGB{10, 200, 10}, 1},
		{RGB{10, 20, 200}, 2},
		// strict comparison: ties keep the earlier channel
		{RGB{100, 100, 100}, 0},
		{RGB{10, 100, 100}, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.c), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Dominant())
		})
	}
}

func TestSaturationPush(t *testing.T) {
	// R dominant: R x1.3, G/B x0.7
	assert.Equal(t, RGB{130, 70, 70}, RGB{100, 100, 100}.SaturationPush())
	assert.Equal(t, RGB{200, 50, 50}, RGB{154, 71, 71}.SaturationPush())
	// clamped
	assert.Equal(t, RGB{255, 140, 140}, RGB{250, 200, 200}.SaturationPush())
}

func TestFromColorAndRGBA(t *testing.T) {
	c := RGB{12, 34, 56}
	assert.Equal(t, c, FromColor(c.RGBA()))
	rgba := c.RGBA()
	assert.EqualValues(t, 255, rgba.A)
}
