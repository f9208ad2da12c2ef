// Package train drives xornet networks through the XOR table.
//
// One training step visits the four XOR rows in table order and, for each
// row, runs Forward, Backward and a gradient descent update before moving on
// to the next row. This is online SGD, not batch gradient descent.
package train

import (
	"fmt"

	"github.com/born-ml/xornet/internal/nn"
	"github.com/born-ml/xornet/internal/optim"
)

// SampleResult records what the network produced for one row of a step,
// measured before that row's update was applied.
type SampleResult struct {
	Sample  nn.Sample `json:"sample"`
	Index   int       `json:"index"`
	Outputs []float64 `json:"outputs"`
	Output  float64   `json:"output"` // first output unit
	Error   float64   `json:"error"`  // Output - Expected[0]
	Loss    float64   `json:"loss"`   // Σ squared error over output units
}

// StepResult is the outcome of TrainStepWithDetails.
type StepResult struct {
	Loss    float64        `json:"loss"`
	Samples []SampleResult `json:"samples"`
}

// TrainStep runs one step over the XOR table and returns the mean of the
// per-sample losses observed during the step.
func TrainStep(net *nn.Network, lr float64) (float64, error) {
	res, err := TrainStepWithDetails(net, lr, nil)
	if err != nil {
		return 0, err
	}
	return res.Loss, nil
}

// TrainStepWithDetails runs one step over the XOR table and reports every
// sample. onSample, when non-nil, is called after each sample's forward pass
// and before its backward pass and update.
//
// A network whose input or output layer does not fit the XOR table is
// rejected before anything is mutated. lr is not validated: 0 makes the step
// a no-op, and large values may drive the network to NaN or Inf.
func TrainStepWithDetails(net *nn.Network, lr float64, onSample func(SampleResult)) (StepResult, error) {
	data := nn.XOR()
	if err := checkFits(net, data[0]); err != nil {
		return StepResult{}, err
	}

	results := make([]SampleResult, 0, len(data))
	var total float64
	for i, s := range data {
		outputs, err := nn.Forward(net, s.Inputs)
		if err != nil {
			return StepResult{}, fmt.Errorf("sample %d: %w", i, err)
		}
		loss, err := nn.SquaredError(outputs, s.Expected)
		if err != nil {
			return StepResult{}, fmt.Errorf("sample %d: %w", i, err)
		}

		r := SampleResult{
			Sample:  s,
			Index:   i,
			Outputs: outputs,
			Output:  outputs[0],
			Error:   outputs[0] - s.Expected[0],
			Loss:    loss,
		}
		results = append(results, r)
		total += loss

		if onSample != nil {
			onSample(r)
		}

		if err := nn.Backward(net, s.Expected); err != nil {
			return StepResult{}, fmt.Errorf("sample %d: %w", i, err)
		}
		optim.UpdateWeights(net, lr)
	}

	return StepResult{
		Loss:    total / float64(len(results)),
		Samples: results,
	}, nil
}

func checkFits(net *nn.Network, s nn.Sample) error {
	if net.InputSize() != len(s.Inputs) {
		return &nn.ShapeError{Layer: "input", Expected: net.InputSize(), Got: len(s.Inputs)}
	}
	if net.OutputSize() != len(s.Expected) {
		return &nn.ShapeError{Layer: "output", Expected: net.OutputSize(), Got: len(s.Expected)}
	}
	return nil
}

// Solves reports whether every XOR row's first output, thresholded at 0.5,
// equals the expected bit. It runs a forward pass per row.
func Solves(net *nn.Network) (bool, error) {
	for _, s := range nn.XOR() {
		out, err := nn.Forward(net, s.Inputs)
		if err != nil {
			return false, err
		}
		if Classify(out[0]) != s.Expected[0] {
			return false, nil
		}
	}
	return true, nil
}

// Classify rounds an output to 0 or 1 at the 0.5 threshold.
func Classify(output float64) float64 {
	if output >= 0.5 {
		return 1
	}
	return 0
}
