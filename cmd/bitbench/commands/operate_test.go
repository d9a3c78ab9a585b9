package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/bitbench/pkg/bits"
)

// run executes the root command. Commands share package-level flag
// variables, so these tests do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		flagInputs, flagState, flagStateFile = nil, "", ""
		flagOutDir, flagBits, flagQuiet = ".", 0, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestOperate_BitError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bitbench.yml"),
		[]byte("log_level: error\nhistory:\n  in_memory: true\n"), 0o644))
	in := filepath.Join(dir, "zeros.bin")
	require.NoError(t, os.WriteFile(in, make([]byte, 125), 0o644))

	out, err := run(t, "operate", "Bit Error",
		"--config", dir,
		"-i", in,
		"--state", `{"error_type":"periodic","error_coeff":1.0,"error_exp":-2}`,
		"-o", dir,
		"-q")
	require.NoError(t, err, out)
	assert.Contains(t, out, "1e-2 BER <- zeros.bin")
	assert.Contains(t, out, "recorded as")

	data, err := os.ReadFile(filepath.Join(dir, "00_1e-2_BER_-_zeros.bin.bin"))
	require.NoError(t, err)
	arr, err := bits.FromBytes(data, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(10), arr.Count())
}

func TestOperate_ArityError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bitbench.yml"),
		[]byte("log_level: error\nhistory:\n  disabled: true\n"), 0o644))

	_, err := run(t, "operate", "Bit Error", "--config", dir, "-q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires exactly 1 input containers, got 0")
}

func TestAnalyze_Find(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bitbench.yml"),
		[]byte("log_level: error\nhistory:\n  disabled: true\n"), 0o644))
	in := filepath.Join(dir, "in.bin")
	require.NoError(t, os.WriteFile(in, []byte{0b01101100}, 0o644))

	out, err := run(t, "analyze", "Find", "--config", dir, "-i", in, "--state", `{"pattern":"11"}`)
	require.NoError(t, err, out)
	assert.Contains(t, out, `"matches": 2`)
}

func TestList(t *testing.T) {
	out, err := run(t, "list", "--config", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Bit Error")
	assert.Contains(t, out, "Bit Count")
	assert.Contains(t, out, "Find")
}
