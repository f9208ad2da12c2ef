package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/xornet/internal/config"
	"github.com/born-ml/xornet/internal/nn"
)

// commonFlags are shared by every subcommand that builds a network.
type commonFlags struct {
	configPath string
	arch       string
	lr         float64
	steps      int
	seed       uint64
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	def := config.Default()
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.arch, "arch", joinInts(def.Architecture), "comma separated layer sizes")
	fs.Float64Var(&c.lr, "lr", def.LearningRate, "learning rate")
	fs.IntVar(&c.steps, "steps", def.Steps, "training steps")
	fs.Uint64Var(&c.seed, "seed", 0, "random seed (0 picks one)")
}

// resolve loads the config file, if any, and applies the flags that were set
// explicitly on top of it.
func (c *commonFlags) resolve(fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return config.Config{}, err
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "arch":
			var arch []int
			if arch, err = parseList[int](c.arch, strconv.Atoi); err == nil {
				cfg.Architecture = arch
			}
		case "lr":
			cfg.LearningRate = c.lr
		case "steps":
			cfg.Steps = c.steps
		case "seed":
			cfg.Seed = c.seed
		}
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid -arch %q: %w", c.arch, err)
	}
	return cfg, cfg.Validate()
}

func networkOptions(cfg config.Config) []nn.Option {
	if cfg.Seed == 0 {
		return nil
	}
	return []nn.Option{nn.WithSeed(cfg.Seed)}
}

func parseList[T any](s string, parse func(string) (T, error)) ([]T, error) {
	parts := strings.Split(s, ",")
	out := make([]T, 0, len(parts))
	for _, p := range parts {
		v, err := parse(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
