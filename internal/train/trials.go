package train

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/xornet/internal/nn"
	"github.com/born-ml/xornet/internal/parallel"
)

// TrialConfig describes a batch of independent training runs.
type TrialConfig struct {
	Architecture []int
	LearningRate float64
	Steps        int    // training steps per trial
	Trials       int    // number of independent networks
	Seed         uint64 // trial i is seeded with Seed+i
	Workers      int    // <= 1 runs trials sequentially
	Logger       *slog.Logger
}

// TrialResult is the outcome of one run.
type TrialResult struct {
	Index       int       `json:"index"`
	Seed        uint64    `json:"seed"`
	InitialLoss float64   `json:"initial_loss"`
	FinalLoss   float64   `json:"final_loss"`
	Outputs     []float64 `json:"outputs"` // first output per XOR row
	Converged   bool      `json:"converged"`
}

// TrialReport aggregates all runs, in trial order.
type TrialReport struct {
	Results   []TrialResult `json:"results"`
	Converged int           `json:"converged"`
	Rate      float64       `json:"rate"`
	MeanLoss  float64       `json:"mean_final_loss"`
}

// RunTrials trains cfg.Trials fresh networks for cfg.Steps steps each and
// reports how many of them solve XOR. Each trial owns its network and random
// source, so trials run concurrently without sharing state. ctx is checked
// before each trial and between steps. On cancellation trials not yet started
// are skipped, and ctx.Err() is returned once together with the trials that
// completed.
func RunTrials(ctx context.Context, cfg TrialConfig) (TrialReport, error) {
	if cfg.Trials < 1 {
		return TrialReport{}, fmt.Errorf("trials: need at least one trial, got %d", cfg.Trials)
	}
	if cfg.Steps < 0 {
		return TrialReport{}, fmt.Errorf("trials: negative step count %d", cfg.Steps)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]TrialResult, cfg.Trials)
	errs := make([]error, cfg.Trials)

	done := make([]bool, cfg.Trials)

	parallel.For(cfg.Trials, func(i int) {
		if ctx.Err() != nil {
			return
		}
		results[i], errs[i] = runTrial(ctx, cfg, i)
		done[i] = errs[i] == nil
		if done[i] {
			logger.Debug("trial finished",
				"trial", i, "final_loss", results[i].FinalLoss, "converged", results[i].Converged)
		}
	}, parallel.WithWorkers(cfg.Workers))

	report := TrialReport{Results: make([]TrialResult, 0, cfg.Trials)}
	losses := make([]float64, 0, cfg.Trials)
	for i, r := range results {
		if !done[i] {
			continue
		}
		report.Results = append(report.Results, r)
		losses = append(losses, r.FinalLoss)
		if r.Converged {
			report.Converged++
		}
	}
	if n := len(report.Results); n > 0 {
		report.Rate = float64(report.Converged) / float64(n)
		report.MeanLoss = floats.Sum(losses) / float64(n)
	}

	if err := ctx.Err(); err != nil && len(report.Results) < cfg.Trials {
		logger.Info("trials cancelled",
			"completed", len(report.Results), "trials", cfg.Trials)
		return report, err
	}
	if err := errors.Join(errs...); err != nil {
		return report, err
	}
	logger.Info("trials finished",
		"trials", cfg.Trials, "converged", report.Converged, "rate", report.Rate)
	return report, nil
}

func runTrial(ctx context.Context, cfg TrialConfig, i int) (TrialResult, error) {
	seed := cfg.Seed + uint64(i)
	net, err := nn.NewNetwork(cfg.Architecture, nn.WithSeed(seed))
	if err != nil {
		return TrialResult{}, fmt.Errorf("trial %d: %w", i, err)
	}

	res := TrialResult{Index: i, Seed: seed}
	if res.InitialLoss, err = nn.ComputeLoss(net, nil); err != nil {
		return TrialResult{}, fmt.Errorf("trial %d: %w", i, err)
	}

	for step := 0; step < cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return TrialResult{}, fmt.Errorf("trial %d: %w", i, err)
		}
		if _, err := TrainStep(net, cfg.LearningRate); err != nil {
			return TrialResult{}, fmt.Errorf("trial %d: %w", i, err)
		}
	}

	if res.FinalLoss, err = nn.ComputeLoss(net, nil); err != nil {
		return TrialResult{}, fmt.Errorf("trial %d: %w", i, err)
	}

	res.Converged = true
	for _, s := range nn.XOR() {
		out, err := nn.Forward(net, s.Inputs)
		if err != nil {
			return TrialResult{}, fmt.Errorf("trial %d: %w", i, err)
		}
		res.Outputs = append(res.Outputs, out[0])
		if Classify(out[0]) != s.Expected[0] {
			res.Converged = false
		}
	}
	return res, nil
}
