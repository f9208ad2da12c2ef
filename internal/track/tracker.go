// Package track records how individual weights move between training steps.
package track

import (
	"math"

	"github.com/born-ml/xornet/internal/nn"
)

// Classification thresholds on |change|.
const (
	noneThreshold   = 0.001
	smallThreshold  = 0.01
	mediumThreshold = 0.1
)

// DefaultHistoryDepth is the number of values kept per weight when New is
// given a non-positive depth.
const DefaultHistoryDepth = 10

// Magnitude buckets the size of a weight change.
type Magnitude int

// Magnitudes, smallest first.
const (
	None Magnitude = iota
	Small
	Medium
	Large
)

func (m Magnitude) String() string {
	switch m {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "none"
	}
}

// MarshalText encodes the magnitude by name.
func (m Magnitude) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Direction is the sign of a weight change.
type Direction int

// Directions.
const (
	Steady Direction = iota
	Increasing
	Decreasing
)

func (d Direction) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "stable"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// MagnitudeOf classifies change: none below 0.001, small below 0.01,
// medium below 0.1, large otherwise.
func MagnitudeOf(change float64) Magnitude {
	abs := math.Abs(change)
	switch {
	case abs < noneThreshold:
		return None
	case abs < smallThreshold:
		return Small
	case abs < mediumThreshold:
		return Medium
	default:
		return Large
	}
}

// DirectionOf classifies the sign of change; changes below 0.001 are Steady.
func DirectionOf(change float64) Direction {
	switch {
	case math.Abs(change) < noneThreshold:
		return Steady
	case change > 0:
		return Increasing
	default:
		return Decreasing
	}
}

// Delta is the change of one weight since the last Capture.
type Delta struct {
	WeightID  string    `json:"weight_id"`
	Previous  float64   `json:"previous"`
	Current   float64   `json:"current"`
	Change    float64   `json:"change"`
	Magnitude Magnitude `json:"magnitude"`
	Direction Direction `json:"direction"`
}

// Tracker keeps the last captured value and a bounded history per weight id.
// It is not safe for concurrent use.
type Tracker struct {
	depth    int
	previous map[string]float64
	history  map[string][]float64
}

// New creates a Tracker keeping up to depth values per weight.
func New(depth int) *Tracker {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &Tracker{
		depth:    depth,
		previous: make(map[string]float64),
		history:  make(map[string][]float64),
	}
}

// Capture stores the current value of every weight as the baseline for the
// next Deltas call and appends it to that weight's history. Call it before a
// training step.
func (t *Tracker) Capture(weights []nn.Weight) {
	for i := range weights {
		w := &weights[i]
		t.previous[w.ID] = w.Value

		h := append(t.history[w.ID], w.Value)
		if len(h) > t.depth {
			h = h[len(h)-t.depth:]
		}
		t.history[w.ID] = h
	}
}

// Deltas compares weights against the last Capture. Weights that were never
// captured are left out.
func (t *Tracker) Deltas(weights []nn.Weight) map[string]Delta {
	out := make(map[string]Delta, len(weights))
	for i := range weights {
		w := &weights[i]
		prev, ok := t.previous[w.ID]
		if !ok {
			continue
		}
		change := w.Value - prev
		out[w.ID] = Delta{
			WeightID:  w.ID,
			Previous:  prev,
			Current:   w.Value,
			Change:    change,
			Magnitude: MagnitudeOf(change),
			Direction: DirectionOf(change),
		}
	}
	return out
}

// History returns a copy of the captured values for id, oldest first.
func (t *Tracker) History(id string) []float64 {
	return append([]float64(nil), t.history[id]...)
}

// Clear forgets every baseline and history.
func (t *Tracker) Clear() {
	clear(t.previous)
	clear(t.history)
}
