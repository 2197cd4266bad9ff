package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/pathsimp"
)

const sCurveData = "M0 0 C10 0 20 10 30 10 S50 20 60 20"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunArgument(t *testing.T) {
	stdout, _, err := execute(t, "", sCurveData)
	require.NoError(t, err)
	assert.Equal(t, "M0 0C20 0 40 20 60 20\n", stdout)
}

func TestRunStdin(t *testing.T) {
	stdout, _, err := execute(t, "\n"+sCurveData+"\n")
	require.NoError(t, err)
	assert.Equal(t, "M0 0C20 0 40 20 60 20\n", stdout)
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, "path.txt", sCurveData)
	stdout, _, err := execute(t, "", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "M0 0C20 0 40 20 60 20\n", stdout)
}

func TestRunUnchanged(t *testing.T) {
	stdout, _, err := execute(t, "", "M0 0 L10 10 Q15 20 20 10 Z")
	require.NoError(t, err)
	assert.Equal(t, "M0 0L10 10Q15 20 20 10Z\n", stdout)
}

func TestRunPrecision(t *testing.T) {
	stdout, _, err := execute(t, "", "-p", "1", "M0.25 0.333 L10.06 0")
	require.NoError(t, err)
	assert.Equal(t, "M0.3 0.3L10.1 0\n", stdout)

	stdout, _, err = execute(t, "", "--precision=-1", "M0.25 0.333 L10.06 0")
	require.NoError(t, err)
	assert.Equal(t, "M0.25 0.333L10.06 0\n", stdout)
}

func TestRunTrace(t *testing.T) {
	_, stderr, err := execute(t, "", "--trace", sCurveData)
	require.NoError(t, err)
	assert.Contains(t, stderr, "subpath 0 chunk 0 passthrough")
	assert.Contains(t, stderr, "length-weighted")
	assert.Contains(t, stderr, "accepted")
}

func TestRunVerbose(t *testing.T) {
	_, stderr, err := execute(t, "", "-v", sCurveData)
	require.NoError(t, err)
	assert.Contains(t, stderr, "simplified path")
	assert.Contains(t, stderr, "merged=1")
}

func TestRunConfig(t *testing.T) {
	// A tolerance this tight rejects the merge.
	path := writeFile(t, "pathsimp.toml", `
tolerance = 1e-12
thresh = 0.01
precision = 0
`)
	stdout, _, err := execute(t, "", "-c", path, "M0 0 C10 0 20 10 30 10 C40 10 50 25 60 20")
	require.NoError(t, err)
	assert.Equal(t, "M0 0C10 0 20 10 30 10C40 10 50 25 60 20\n", stdout)

	// Flags take precedence over the file.
	stdout, _, err = execute(t, "", "-c", path, "-t", "5", "--thresh", "1", sCurveData)
	require.NoError(t, err)
	assert.Equal(t, "M0 0C20 0 40 20 60 20\n", stdout)
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "", "M0 0 X")
	assert.ErrorIs(t, err, pathsimp.ErrInvalidCommand)

	_, _, err = execute(t, "")
	assert.ErrorIs(t, err, pathsimp.ErrEmptyPath)

	_, _, err = execute(t, "", "-t", "-1", sCurveData)
	assert.ErrorIs(t, err, pathsimp.ErrInvalidConfig)

	_, _, err = execute(t, "", sCurveData, sCurveData)
	assert.Error(t, err)

	_, _, err = execute(t, "", "--file", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bad.toml", "tolerence = 5\n")
	_, _, err = execute(t, "", "-c", path, sCurveData)
	assert.Error(t, err)
}
