package render

import "math"

// ColorStop is one stop of a linear gradient; Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  string
}

// Arc describes a stroke along a circle from StartAngle to EndAngle (radians,
// canvas convention: 0 at three o'clock, clockwise).
type Arc struct {
	StartAngle float64
	EndAngle   float64
	LineWidth  float64
	Stops      []ColorStop
}

// Sweep returns EndAngle - StartAngle.
func (a Arc) Sweep() float64 {
	return a.EndAngle - a.StartAngle
}

var gaugeStops = []ColorStop{
	{0, "#4ade80"},
	{0.5, "#facc15"},
	{1, "#ef4444"},
}

// Gauge returns the semicircular arc for value on a 0..scale range. The ratio is
// clamped to [0, 1], so the sweep never exceeds π. A non-positive scale yields an
// empty arc.
func Gauge(value, scale float64) Arc {
	ratio := 0.0
	if scale > 0 {
		ratio = value / scale
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return Arc{
		StartAngle: math.Pi,
		EndAngle:   math.Pi + math.Pi*ratio,
		LineWidth:  10,
		Stops:      gaugeStops,
	}
}

// SunArc is the fixed daylight arc.
func SunArc() Arc {
	return Arc{
		StartAngle: math.Pi,
		EndAngle:   2 * math.Pi,
		LineWidth:  6,
		Stops:      []ColorStop{{0, "#FFA500"}, {1, "#6B1AFF"}},
	}
}

// MoonArc is the fixed moonlight arc.
func MoonArc() Arc {
	return Arc{
		StartAngle: math.Pi,
		EndAngle:   2 * math.Pi,
		LineWidth:  6,
		Stops:      []ColorStop{{0, "#FFD27F"}, {1, "#5F4B8B"}},
	}
}

// Bar renders the arc's fill as a text bar of the given width, for terminals.
func (a Arc) Bar(width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(a.Sweep() / math.Pi * float64(width)))
	out := make([]rune, width)
	for i := range out {
		if i < filled {
			out[i] = '█'
		} else {
			out[i] = '░'
		}
	}
	return string(out)
}
