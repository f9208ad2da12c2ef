package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/xornet/internal/config"
	"github.com/born-ml/xornet/internal/nn"
	"github.com/born-ml/xornet/internal/trace"
	"github.com/born-ml/xornet/internal/track"
	"github.com/born-ml/xornet/internal/train"
)

func runTrain(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	every := fs.Int("every", 1000, "print progress every N steps (0 disables)")
	deltas := fs.Bool("deltas", false, "print per-weight changes with progress")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return err
	}

	net, err := nn.NewNetwork(cfg.Architecture, networkOptions(cfg)...)
	if err != nil {
		return err
	}

	opts := []train.SessionOption{
		train.WithLearningRate(cfg.LearningRate),
		train.WithLogger(logger),
	}
	if *deltas {
		opts = append(opts, train.WithTracker(track.New(track.DefaultHistoryDepth)))
	}
	s, err := train.NewSession(net, opts...)
	if err != nil {
		return err
	}
	logger.Info("training started", "architecture", cfg.Architecture,
		"lr", s.LearningRate(), "steps", cfg.Steps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = s.Run(ctx, cfg.Steps, func(sum train.Summary) {
		if *every <= 0 || sum.Step%*every != 0 {
			return
		}
		fmt.Fprintf(stdout, "step %6d  loss %.6f  %s\n", sum.Step, sum.Loss, sum.Trend.Direction)
		for _, w := range net.Weights() {
			if d, ok := sum.Deltas[w.ID]; ok && d.Magnitude != track.None {
				fmt.Fprintf(stdout, "    %-16s %+.6f %s\n", w.ID, d.Change, d.Magnitude)
			}
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintf(stdout, "\nfinal loss %.6f after %d steps\n", s.Loss(), s.Steps())
	for _, sample := range nn.XOR() {
		out, err := nn.Forward(net, sample.Inputs)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %v -> %.4f (expected %v)\n", sample.Inputs, out[0], sample.Expected[0])
	}
	solved, err := train.Solves(net)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "solved: %t\n", solved)
	return nil
}

func runTrials(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("trials", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	n := fs.Int("n", config.Default().Trials, "number of trials")
	workers := fs.Int("workers", runtime.NumCPU(), "concurrent trials")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Trials = *n
		case "workers":
			cfg.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
		logger.Debug("picked trial seed", "seed", cfg.Seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := train.RunTrials(ctx, train.TrialConfig{
		Architecture: cfg.Architecture,
		LearningRate: cfg.LearningRate,
		Steps:        cfg.Steps,
		Trials:       cfg.Trials,
		Seed:         cfg.Seed,
		Workers:      cfg.Workers,
		Logger:       logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	for _, r := range report.Results {
		fmt.Fprintf(stdout, "trial %3d  seed %-20d loss %.4f -> %.6f  converged %t\n",
			r.Index, r.Seed, r.InitialLoss, r.FinalLoss, r.Converged)
	}
	fmt.Fprintf(stdout, "\nconverged %d/%d (%.0f%%), mean final loss %.6f\n",
		report.Converged, len(report.Results), report.Rate*100, report.MeanLoss)
	return nil
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	asJSON := fs.Bool("json", false, "print the network snapshot as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	net, err := nn.NewNetwork(cfg.Architecture, networkOptions(cfg)...)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(net.Snapshot())
	}

	fmt.Fprintf(stdout, "architecture %v: %d neurons, %d weights\n\n",
		net.Architecture(), net.TotalNeurons(), net.TotalWeights())
	for _, layer := range net.Layers() {
		fmt.Fprintf(stdout, "layer %d (%s)\n", layer.Index, layer.Type)
		for _, neuron := range layer.Neurons {
			fmt.Fprintf(stdout, "  %-8s bias % .4f\n", neuron.ID, neuron.Bias)
		}
		if layer.Index == len(net.Layers())-1 {
			continue
		}
		m, err := net.WeightMatrix(layer.Index)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  weights to layer %d:\n  %.4v\n\n", layer.Index+1,
			mat.Formatted(m, mat.Prefix("  "), mat.Squeeze()))
	}
	return nil
}

func runTrace(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	input := fs.String("input", "0,1", "comma separated input values")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	// Without -config or -steps an untouched network is traced.
	steps := 0
	if common.configPath != "" {
		steps = cfg.Steps
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "steps" {
			steps = cfg.Steps
		}
	})
	inputs, err := parseList(*input, parseFloat)
	if err != nil {
		return fmt.Errorf("invalid -input %q: %w", *input, err)
	}
	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return err
	}

	net, err := nn.NewNetwork(cfg.Architecture, networkOptions(cfg)...)
	if err != nil {
		return err
	}
	if steps > 0 {
		s, err := train.NewSession(net, train.WithLearningRate(cfg.LearningRate), train.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := s.Run(context.Background(), steps, nil); err != nil {
			return err
		}
		logger.Info("trained before trace", "steps", s.Steps(), "loss", s.Loss())
	}

	layers, err := trace.Forward(net, inputs)
	if err != nil {
		return err
	}
	for _, step := range layers {
		fmt.Fprintf(stdout, "%s\n", step.Label)
		for _, calc := range step.Neurons {
			fmt.Fprintf(stdout, "  %-8s %s\n", calc.NeuronID, trace.Formula(calc))
		}
	}
	fmt.Fprintf(stdout, "\nprediction %.4f\n", trace.Prediction(layers))
	return nil
}
