package nn

// Sample is one row of a training table.
type Sample struct {
	Inputs   []float64 `json:"inputs"`
	Expected []float64 `json:"expected"`
}

var xorTable = [4][3]float64{
	{0, 0, 0},
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 0},
}

// XOR returns the XOR truth table in its fixed order:
// (0,0)→0, (0,1)→1, (1,0)→1, (1,1)→0.
//
// Each call returns fresh slices, so callers cannot alter the table.
func XOR() []Sample {
	out := make([]Sample, len(xorTable))
	for i, row := range xorTable {
		out[i] = Sample{
			Inputs:   []float64{row[0], row[1]},
			Expected: []float64{row[2]},
		}
	}
	return out
}
