// Package trace explains a forward pass neuron by neuron.
//
// For every neuron it reports the weighted terms that fed it, its bias,
// pre-activation and activation, and a printable formula such as
//
//	(1.000×0.532) + (0.000×-1.204) + bias(0.031) = 0.563 → σ = 0.637
package trace

import (
	"fmt"
	"strings"

	"github.com/born-ml/xornet/internal/nn"
)

// Term is one weighted input of a neuron.
type Term struct {
	SourceID   string  `json:"source_id"`
	Activation float64 `json:"activation"`
	Weight     float64 `json:"weight"`
}

// Calculation is the breakdown of one neuron's value.
type Calculation struct {
	NeuronID      string  `json:"neuron_id"`
	Terms         []Term  `json:"terms"`
	Bias          float64 `json:"bias"`
	PreActivation float64 `json:"pre_activation"`
	Activation    float64 `json:"activation"`
	Formula       string  `json:"formula"`
}

// LayerStep groups the calculations of one layer.
type LayerStep struct {
	Index   int           `json:"index"`
	Type    nn.LayerType  `json:"type"`
	Label   string        `json:"label"`
	Neurons []Calculation `json:"neurons"`
}

// Forward runs inputs through net and returns one LayerStep per layer, input
// layer first. The network's activations are left as the pass set them.
func Forward(net *nn.Network, inputs []float64) ([]LayerStep, error) {
	if _, err := nn.Forward(net, inputs); err != nil {
		return nil, err
	}

	layers := net.Layers()
	steps := make([]LayerStep, 0, len(layers))
	hidden := 0
	for _, layer := range layers {
		step := LayerStep{
			Index:   layer.Index,
			Type:    layer.Type,
			Neurons: make([]Calculation, 0, layer.Size()),
		}
		switch layer.Type {
		case nn.Input:
			step.Label = "Input"
		case nn.Output:
			step.Label = "Output"
		default:
			hidden++
			step.Label = fmt.Sprintf("Hidden %d", hidden)
		}

		for _, neuron := range layer.Neurons {
			calc := Calculation{
				NeuronID:      neuron.ID,
				Bias:          neuron.Bias,
				PreActivation: neuron.PreActivation,
				Activation:    neuron.Activation,
			}
			for _, w := range net.IncomingWeights(neuron.ID) {
				src, _ := net.NeuronByID(w.FromID)
				calc.Terms = append(calc.Terms, Term{
					SourceID:   w.FromID,
					Activation: src.Activation,
					Weight:     w.Value,
				})
			}
			calc.Formula = Formula(calc)
			step.Neurons = append(step.Neurons, calc)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func num(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// Formula renders calc as "terms + bias(b) = z → σ = a". Input neurons,
// which have no terms, render as "Input value: a".
func Formula(calc Calculation) string {
	if len(calc.Terms) == 0 {
		return "Input value: " + num(calc.Activation)
	}

	terms := make([]string, len(calc.Terms))
	for i, t := range calc.Terms {
		terms[i] = "(" + num(t.Activation) + "×" + num(t.Weight) + ")"
	}
	return fmt.Sprintf("%s + bias(%s) = %s → σ = %s",
		strings.Join(terms, " + "), num(calc.Bias), num(calc.PreActivation), num(calc.Activation))
}

// Summary renders calc in short form: "Σ = z → a", or "= a" for inputs.
func Summary(calc Calculation) string {
	if len(calc.Terms) == 0 {
		return "= " + num(calc.Activation)
	}
	return "Σ = " + num(calc.PreActivation) + " → " + num(calc.Activation)
}

// Prediction returns the first output activation of a trace, or 0 for an
// empty one.
func Prediction(steps []LayerStep) float64 {
	if len(steps) == 0 {
		return 0
	}
	out := steps[len(steps)-1]
	if len(out.Neurons) == 0 {
		return 0
	}
	return out.Neurons[0].Activation
}

// IsCorrect reports whether the prediction, thresholded at threshold, equals
// expected (0 or 1).
func IsCorrect(steps []LayerStep, expected, threshold float64) bool {
	class := 0.0
	if Prediction(steps) >= threshold {
		class = 1
	}
	return class == expected
}
