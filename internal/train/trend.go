package train

import "math"

// Direction is the short-term movement of the loss between two steps.
type Direction int

// Loss directions.
const (
	Stable Direction = iota
	Improving
	Worsening
	Converged
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Improving:
		return "improving"
	case Worsening:
		return "worsening"
	case Converged:
		return "converged"
	default:
		return "stable"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// TrendConfig holds the thresholds used by ComputeTrend.
type TrendConfig struct {
	ChangeThreshold    float64 // |current-previous| below this is Stable
	ConvergedThreshold float64 // current below this is Converged
}

// DefaultTrendConfig returns ChangeThreshold 0.001 and ConvergedThreshold 0.01.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{
		ChangeThreshold:    0.001,
		ConvergedThreshold: 0.01,
	}
}

// Trend describes how the loss moved between two steps.
type Trend struct {
	Direction    Direction `json:"direction"`
	Current      float64   `json:"current"`
	Previous     float64   `json:"previous"`
	Change       float64   `json:"change"`
	ChangeBounds float64   `json:"change_threshold"`
}

// ComputeTrend classifies the move from previous to current. A loss under
// the converged threshold is Converged regardless of its change.
func ComputeTrend(current, previous float64, cfg TrendConfig) Trend {
	t := Trend{
		Current:      current,
		Previous:     previous,
		Change:       current - previous,
		ChangeBounds: cfg.ChangeThreshold,
	}

	switch {
	case current < cfg.ConvergedThreshold:
		t.Direction = Converged
	case math.Abs(t.Change) < cfg.ChangeThreshold:
		t.Direction = Stable
	case t.Change < 0:
		t.Direction = Improving
	default:
		t.Direction = Worsening
	}
	return t
}
