package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videopattern/chroma"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"none", None, false},
		{"frame", Frame, false},
		{"vibrant", Vibrant, false},
		{"dynamic", Dynamic, false},
		{"contrast", Contrast, false},
		{"neon", Neon, false},
		{"gradient-flow", GradientFlow, false},
		{"sepia", None, true},
		{"", None, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, GradientFlow.Temporal())
	assert.True(t, Frame.FrameBased())
	for _, k := range []Kind{None, Frame, Vibrant, Dynamic, Contrast, Neon} {
		assert.False(t, k.Temporal(), k.String())
	}
	for _, k := range []Kind{None, Vibrant, Dynamic, Contrast, Neon, GradientFlow} {
		assert.False(t, k.FrameBased(), k.String())
	}
}

func TestApplyExamples(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   chroma.RGB
		want chroma.RGB
	}{
		{"none passthrough", None, chroma.RGB{R: 10, G: 20, B: 30}, chroma.RGB{R: 10, G: 20, B: 30}},
		{"frame passthrough", Frame, chroma.RGB{R: 10, G: 20, B: 30}, chroma.RGB{R: 10, G: 20, B: 30}},
		// contrast: 200x1.4 clamps, 50/1.4 and 10/1.4 round
		{"contrast", Contrast, chroma.RGB{R: 200, G: 50, B: 10}, chroma.RGB{R: 255, G: 36, B: 7}},
		{"contrast midpoint divides", Contrast, chroma.RGB{R: 128, G: 128, B: 128}, chroma.RGB{R: 91, G: 91, B: 91}},
		// neon: G dominant
		{"neon", Neon, chroma.RGB{R: 10, G: 200, B: 10}, chroma.RGB{R: 6, G: 255, B: 6}},
		// vibrant dark: push (130,70,70), mean 90 < 127.5, x1.4
		{"vibrant dark", Vibrant, chroma.RGB{R: 100, G: 100, B: 100}, chroma.RGB{R: 182, G: 98, B: 98}},
		// vibrant bright: push (255,140,140), mean 178.3, x1.1
		{"vibrant bright", Vibrant, chroma.RGB{R: 250, G: 200, B: 200}, chroma.RGB{R: 255, G: 154, B: 154}},
		// dynamic bright: mean 133.3 > 127.5, deviations x1.3
		{"dynamic bright", Dynamic, chroma.RGB{R: 200, G: 100, B: 100}, chroma.RGB{R: 222, G: 92, B: 92}},
		// dynamic dark: mean 50, deviations x0.8
		{"dynamic dark", Dynamic, chroma.RGB{R: 50, G: 50, B: 50}, chroma.RGB{R: 66, G: 66, B: 66}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.kind, tt.in, nil))
		})
	}
}

func TestGradientFlow(t *testing.T) {
	// SaturationPush(154,71,71) = (200,50,50)
	candidate := chroma.RGB{R: 154, G: 71, B: 71}

	t.Run("first cell passes the pushed candidate", func(t *testing.T) {
		assert.Equal(t, chroma.RGB{R: 200, G: 50, B: 50}, Apply(GradientFlow, candidate, nil))
	})

	t.Run("blends 70/30 with the previous output", func(t *testing.T) {
		prev := chroma.RGB{R: 100, G: 100, B: 100}
		assert.Equal(t, chroma.RGB{R: 170, G: 65, B: 65}, Apply(GradientFlow, candidate, &prev))
	})

	t.Run("deterministic over a fixed sequence", func(t *testing.T) {
		seq := []chroma.RGB{{R: 10, G: 200, B: 30}, {R: 255, G: 0, B: 0}, {R: 100, G: 100, B: 100}, {R: 0, G: 0, B: 0}, {R: 5, G: 250, B: 190}}
		run := func() []chroma.RGB {
			var out []chroma.RGB
			var prev *chroma.RGB
			for _, c := range seq {
				res := Apply(GradientFlow, c, prev)
				out = append(out, res)
				prev = &out[len(out)-1]
			}
			return out
		}
		assert.Equal(t, run(), run())
	})
}

// Everything except gradient-flow is a pure function of its single color
// argument: repeated application with the same input gives the same output.
func TestApplyPurity(t *testing.T) {
	inputs := []chroma.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}, {R: 1, G: 254, B: 128}, {R: 200, G: 50, B: 10}, {R: 128, G: 128, B: 128}}
	for _, k := range []Kind{None, Vibrant, Dynamic, Contrast, Neon} {
		for _, c := range inputs {
			first := Apply(k, c, nil)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, Apply(k, c, nil), "%s(%v)", k, c)
			}
		}
	}
}

// Every filter output stays channel-clamped for any input in [0,255]^3.
func TestApplyClamping(t *testing.T) {
	kinds := []Kind{None, Frame, Vibrant, Dynamic, Contrast, Neon, GradientFlow}
	prev := chroma.RGB{R: 255, G: 255, B: 255}
	for _, k := range kinds {
		for r := 0; r <= 255; r += 51 {
			for g := 0; g <= 255; g += 51 {
				for b := 0; b <= 255; b += 51 {
					out := Apply(k, chroma.RGB{R: r, G: g, B: b}, &prev)
					assert.Equal(t, out, out.Clamp(), "%s(%d,%d,%d)", k, r, g, b)
				}
			}
		}
	}
}
