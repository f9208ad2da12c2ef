// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"context"

	"github.com/born-ml/xornet/internal/nn"
	"github.com/born-ml/xornet/internal/track"
	"github.com/born-ml/xornet/internal/trace"
	"github.com/born-ml/xornet/internal/train"
)

// Session owns the mutable state around one network.
type Session = train.Session

// SessionOption configures a Session.
type SessionOption = train.SessionOption

// Summary describes one completed Session step.
type Summary = train.Summary

// SampleResult is the outcome of one sample inside a step.
type SampleResult = train.SampleResult

// StepResult is the outcome of one full pass over the XOR table.
type StepResult = train.StepResult

// Loss trend

// Trend describes how the loss moved between two steps.
type Trend = train.Trend

// TrendConfig holds the thresholds used by ComputeTrend.
type TrendConfig = train.TrendConfig

// Direction is the short-term movement of the loss.
type Direction = train.Direction

// Loss directions.
const (
	Stable    = train.Stable
	Improving = train.Improving
	Worsening = train.Worsening
	Converged = train.Converged
)

// Trials

// TrialConfig describes a batch of independent training runs.
type TrialConfig = train.TrialConfig

// TrialResult is the outcome of one run.
type TrialResult = train.TrialResult

// TrialReport aggregates all runs.
type TrialReport = train.TrialReport

// Weight tracking

// Tracker records per-weight changes between steps.
type Tracker = track.Tracker

// Delta is the change of one weight since the last capture.
type Delta = track.Delta

// LayerStep is one layer of a traced forward pass.
type LayerStep = trace.LayerStep

// NewSession wraps net. The learning rate defaults to 0.5 and both losses
// start at the network's current XOR loss.
//
// Example:
//
//	s, err := train.NewSession(net, train.WithLearningRate(0.8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Run(ctx, 1000, nil); err != nil {
//	    log.Fatal(err)
//	}
func NewSession(net *nn.Network, opts ...SessionOption) (*Session, error) {
	return train.NewSession(net, opts...)
}

// WithLearningRate sets the initial learning rate, clamped to [0.01, 2.0].
func WithLearningRate(lr float64) SessionOption {
	return train.WithLearningRate(lr)
}

// WithTracker records per-weight changes into t on every step.
func WithTracker(t *Tracker) SessionOption {
	return train.WithTracker(t)
}

// NewTracker creates a Tracker keeping up to depth values per weight.
func NewTracker(depth int) *Tracker {
	return track.New(depth)
}

// TrainStep runs one online pass over the XOR table and returns its mean loss.
func TrainStep(net *nn.Network, lr float64) (float64, error) {
	return train.TrainStep(net, lr)
}

// TrainStepWithDetails is TrainStep with per-sample results.
func TrainStepWithDetails(net *nn.Network, lr float64, onSample func(SampleResult)) (StepResult, error) {
	return train.TrainStepWithDetails(net, lr, onSample)
}

// ComputeTrend classifies the move from previous to current.
func ComputeTrend(current, previous float64, cfg TrendConfig) Trend {
	return train.ComputeTrend(current, previous, cfg)
}

// DefaultTrendConfig returns the default trend thresholds.
func DefaultTrendConfig() TrendConfig {
	return train.DefaultTrendConfig()
}

// Solves reports whether every XOR row is classified correctly.
func Solves(net *nn.Network) (bool, error) {
	return train.Solves(net)
}

// RunTrials trains independent networks and reports how many solve XOR.
func RunTrials(ctx context.Context, cfg TrialConfig) (TrialReport, error) {
	return train.RunTrials(ctx, cfg)
}

// Trace runs a forward pass and records the calculation of every neuron.
func Trace(net *nn.Network, inputs []float64) ([]LayerStep, error) {
	return trace.Forward(net, inputs)
}
