package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/xornet/internal/nn"
	"github.com/born-ml/xornet/internal/train"
)

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, version)
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := execute(t, "serve")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "serve"`)
}

func TestTrain(t *testing.T) {
	code, out, errOut := execute(t, "train", "-steps", "20", "-every", "10", "-seed", "7")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "step     10")
	assert.Contains(t, out, "step     20")
	assert.Contains(t, out, "final loss")
	assert.Contains(t, out, "solved:")
}

func TestTrainRejectsBadArchitecture(t *testing.T) {
	code, _, errOut := execute(t, "train", "-arch", "2,x,1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid -arch")

	code, _, errOut = execute(t, "train", "-arch", "2")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid config")
}

func TestTrainWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("architecture: [2, 3, 1]\nsteps: 5\nseed: 3\n"), 0o600))

	code, out, errOut := execute(t, "train", "-config", path, "-every", "5")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "after 5 steps")
}

func TestTrialsJSON(t *testing.T) {
	code, out, errOut := execute(t, "trials", "-n", "3", "-workers", "2", "-steps", "10", "-seed", "1", "-json")
	require.Equal(t, 0, code, errOut)

	var report train.TrialReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 3)
	for i, r := range report.Results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, uint64(1+i), r.Seed)
	}
}

func TestInspect(t *testing.T) {
	code, out, errOut := execute(t, "inspect", "-seed", "1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "12 neurons, 28 weights")
	assert.Contains(t, out, "h1_0")

	code, out, errOut = execute(t, "inspect", "-seed", "1", "-json")
	require.Equal(t, 0, code, errOut)
	var snap nn.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, []int{2, 4, 3, 2, 1}, snap.Architecture)
	assert.Len(t, snap.Weights, 28)
}

func TestTrace(t *testing.T) {
	code, out, errOut := execute(t, "trace", "-seed", "1", "-input", "1,0")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Input")
	assert.Contains(t, out, "Hidden 1")
	assert.Contains(t, out, "Output")
	assert.Contains(t, out, "prediction")

	code, _, errOut = execute(t, "trace", "-input", "1,0,1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "shape mismatch")
}

func TestTraceTrainsWithConfigSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("architecture: [2, 2, 1]\nsteps: 5\nseed: 3\n"), 0o600))

	code, out, errOut := execute(t, "trace", "-config", path, "-input", "0,1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, errOut, "trained before trace")
	assert.Contains(t, errOut, "steps=5")
	assert.Contains(t, out, "prediction")

	code, _, errOut = execute(t, "trace", "-seed", "3", "-input", "0,1")
	require.Equal(t, 0, code, errOut)
	assert.NotContains(t, errOut, "trained before trace")
}
