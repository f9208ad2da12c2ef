package train

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/born-ml/xornet/internal/nn"
	"github.com/born-ml/xornet/internal/optim"
	"github.com/born-ml/xornet/internal/track"
)

// Summary describes one completed Session step.
type Summary struct {
	Step         int                    `json:"step"`
	Samples      []SampleResult         `json:"samples"`
	Loss         float64                `json:"loss"`
	PreviousLoss float64                `json:"previous_loss"`
	Improving    bool                   `json:"improving"`
	Trend        Trend                  `json:"trend"`
	Deltas       map[string]track.Delta `json:"deltas,omitempty"`
}

// Session owns the state an interactive driver needs around one Network:
// learning rate, step counter, last two losses and, optionally, a weight
// change tracker. It is created explicitly and passed around; nothing is
// kept in package-level variables.
//
// A Session is not safe for concurrent use. Callers must not start a Step
// while another one is running.
type Session struct {
	id       string
	net      *nn.Network
	lr       float64
	steps    int
	loss     float64
	prevLoss float64
	trendCfg TrendConfig
	tracker  *track.Tracker
	logger   *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLearningRate sets the initial learning rate (clamped to
// [optim.MinLR, optim.MaxLR]).
func WithLearningRate(lr float64) SessionOption {
	return func(s *Session) { s.lr = optim.ClampLR(lr) }
}

// WithTracker records per-weight changes into t on every step.
func WithTracker(t *track.Tracker) SessionOption {
	return func(s *Session) { s.tracker = t }
}

// WithTrendConfig overrides the loss trend thresholds.
func WithTrendConfig(cfg TrendConfig) SessionOption {
	return func(s *Session) { s.trendCfg = cfg }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession wraps net. The learning rate defaults to optim.DefaultLR.
// Both losses start at the network's current XOR loss, so a network that
// does not fit the XOR table is rejected here.
func NewSession(net *nn.Network, opts ...SessionOption) (*Session, error) {
	s := &Session{
		id:       uuid.NewString(),
		net:      net,
		lr:       optim.DefaultLR,
		trendCfg: DefaultTrendConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	if err := s.measure(); err != nil {
		return nil, err
	}
	return s, nil
}

// measure sets both losses to the network's current XOR loss.
func (s *Session) measure() error {
	loss, err := nn.ComputeLoss(s.net, nil)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.loss, s.prevLoss = loss, loss
	return nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Network returns the trained network.
func (s *Session) Network() *nn.Network { return s.net }

// LearningRate returns the current learning rate.
func (s *Session) LearningRate() float64 { return s.lr }

// SetLearningRate clamps lr to [optim.MinLR, optim.MaxLR], stores it and
// returns the stored value.
func (s *Session) SetLearningRate(lr float64) float64 {
	s.lr = optim.ClampLR(lr)
	s.logger.Debug("learning rate changed", "requested", lr, "lr", s.lr)
	return s.lr
}

// Steps returns the number of completed steps since creation or Reset.
func (s *Session) Steps() int { return s.steps }

// Loss returns the loss of the last step, or the network's loss when the
// session was created or reset.
func (s *Session) Loss() float64 { return s.loss }

// PreviousLoss returns the loss of the step before the last one.
func (s *Session) PreviousLoss() float64 { return s.prevLoss }

// Step runs one training step and returns its summary.
func (s *Session) Step() (Summary, error) {
	return s.step(nil)
}

// StepWithCallback is Step with a per-sample callback, see TrainStepWithDetails.
func (s *Session) StepWithCallback(onSample func(SampleResult)) (Summary, error) {
	return s.step(onSample)
}

func (s *Session) step(onSample func(SampleResult)) (Summary, error) {
	if s.tracker != nil {
		s.tracker.Capture(s.net.Weights())
	}

	res, err := TrainStepWithDetails(s.net, s.lr, onSample)
	if err != nil {
		return Summary{}, err
	}

	s.steps++
	s.prevLoss, s.loss = s.loss, res.Loss

	sum := Summary{
		Step:         s.steps,
		Samples:      res.Samples,
		Loss:         s.loss,
		PreviousLoss: s.prevLoss,
		Improving:    s.loss < s.prevLoss,
		Trend:        ComputeTrend(s.loss, s.prevLoss, s.trendCfg),
	}
	if s.tracker != nil {
		sum.Deltas = s.tracker.Deltas(s.net.Weights())
	}

	if math.IsNaN(s.loss) || math.IsInf(s.loss, 0) {
		s.logger.Warn("loss is not finite; lower the learning rate or reset",
			"step", s.steps, "lr", s.lr, "loss", s.loss)
	} else {
		s.logger.Debug("training step finished",
			"step", s.steps, "loss", s.loss, "trend", sum.Trend.Direction.String())
	}

	return sum, nil
}

// Run performs up to steps training steps, calling onStep (if non-nil) after
// each one. ctx is checked between steps; a step in progress always runs to
// completion. It returns ctx.Err() when cancelled.
func (s *Session) Run(ctx context.Context, steps int, onStep func(Summary)) error {
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			s.logger.Info("training paused", "step", s.steps, "loss", s.loss)
			return err
		}
		sum, err := s.Step()
		if err != nil {
			return err
		}
		if onStep != nil {
			onStep(sum)
		}
	}
	return nil
}

// Reset redraws the network's parameters in place, zeroes the step counter,
// sets both losses to the fresh network's loss and clears the tracker. The
// learning rate is kept.
func (s *Session) Reset() error {
	s.net.Reinitialize()
	s.steps = 0
	if s.tracker != nil {
		s.tracker.Clear()
	}
	if err := s.measure(); err != nil {
		return err
	}
	s.logger.Info("network reset", "loss", s.loss)
	return nil
}
