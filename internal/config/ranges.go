package config

import "math"

// SliderRange describes one input slider: its bounds, step grid and default.
// Enforcing the domain is the caller's job; the engine accepts anything.
type SliderRange struct {
	Label   string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

var (
	SpendingRange = SliderRange{Label: "Monthly Spending", Min: 50, Max: 500, Step: 10, Default: 150}
	PricingRange  = SliderRange{Label: "Pricing Strategy", Min: 100, Max: 1000, Step: 25, Default: 300}
	HiringRange   = SliderRange{Label: "Team Size", Min: 1, Max: 200, Step: 5, Default: 25}
)

// Clamp bounds v to [Min, Max]. NaN collapses to Min.
func (r SliderRange) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Snap rounds v onto the Min + k*Step grid, then clamps.
// Max stays reachable even when it is off-grid.
func (r SliderRange) Snap(v float64) float64 {
	if r.Step <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return r.Clamp(v)
	}
	k := math.Round((v - r.Min) / r.Step)
	return r.Clamp(r.Min + k*r.Step)
}

// Nudge moves v by steps increments (negative to decrease) and snaps the result.
func (r SliderRange) Nudge(v float64, steps int) float64 {
	return r.Snap(v + float64(steps)*r.Step)
}

// Fraction reports where v sits between Min and Max, in [0, 1].
func (r SliderRange) Fraction(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}
