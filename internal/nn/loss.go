package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ComputeLoss returns the mean over samples of the summed squared error
// Σ (output_i - expected_i)². A nil or empty data set means the XOR table.
//
// Each sample goes through a full Forward pass, so the network's activations
// afterwards are those of the last sample.
func ComputeLoss(n *Network, data []Sample) (float64, error) {
	if len(data) == 0 {
		data = XOR()
	}

	errs := make([]float64, len(data))
	for i, s := range data {
		outputs, err := Forward(n, s.Inputs)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		e, err := SquaredError(outputs, s.Expected)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		errs[i] = e
	}

	return floats.Sum(errs) / float64(len(data)), nil
}

// SquaredError returns Σ (outputs_i - expected_i)².
func SquaredError(outputs, expected []float64) (float64, error) {
	if len(outputs) != len(expected) {
		return 0, &ShapeError{Layer: "output", Expected: len(outputs), Got: len(expected)}
	}
	var sum float64
	for i := range outputs {
		d := outputs[i] - expected[i]
		sum += d * d
	}
	return sum, nil
}
