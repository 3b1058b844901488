// Package heatmap maps fit scores onto a red-to-green colour scale.
package heatmap

import (
	"fmt"
	"math"
)

// Scale constants.
const (
	// MinSpread is the narrowest range a scale will use. Narrower ranges
	// would colour 69 red and 71 green.
	MinSpread = 15.0

	defaultMin = 0.0
	defaultMax = 100.0

	worstHue   = 0.0
	bestHue    = 120.0
	saturation = 70.0
	lightness  = 35.0 // dark enough for white text
)

// HSL is a colour description independent of any rendering syntax.
type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// CSS renders the colour as a CSS hsl() value.
func (c HSL) CSS() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.Hue, c.Saturation, c.Lightness)
}

// Scale colours scores within [min, max].
type Scale struct {
	min float64
	max float64
}

// NewScale builds a scale over [min, max]. When the range is narrower than
// MinSpread, min is lowered to max-MinSpread; max is never raised.
func NewScale(min, max float64) Scale {
	if max-min < MinSpread {
		min = max - MinSpread
	}
	return Scale{min: min, max: max}
}

// FromScores builds a scale over the extremes of scores. An empty sample
// yields 0..100.
func FromScores(scores []float64) Scale {
	if len(scores) == 0 {
		return NewScale(defaultMin, defaultMax)
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	return NewScale(lo, hi)
}

// Min returns the effective lower bound.
func (s Scale) Min() float64 { return s.min }

// Max returns the upper bound.
func (s Scale) Max() float64 { return s.max }

// Range returns max-min, never below MinSpread.
func (s Scale) Range() float64 { return s.max - s.min }

// Color maps score to a hue between 0 (worst) and 120 (best). The position
// within the range is cubed so only clearly elite scores turn green.
func (s Scale) Color(score float64) HSL {
	score = math.Max(s.min, math.Min(s.max, score))
	t := (score - s.min) / s.Range()
	t = t * t * t
	return HSL{
		Hue:        worstHue + t*(bestHue-worstHue),
		Saturation: saturation,
		Lightness:  lightness,
	}
}
