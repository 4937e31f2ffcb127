package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0.1.0-dev")
}

func TestRunRejectsInvalidKind(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run", "--kind", "triple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid click configuration")
}

func TestRunRejectsNegativeInterval(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run", "--interval", "-5ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid click configuration")
}

func TestRunRejectsUnknownPreset(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run", "--preset", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestClickRequiresAtFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "click")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--at")
}

func TestClickRejectsMalformedPoint(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "click", "--at", "640")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected x,y")
}

func TestPresetSaveThenListShowsPreset(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"preset", "save", "afk",
		"--x", "640", "--y", "400",
		"--interval", "250ms",
		"--kind", "double",
	)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "afk")
	assert.Contains(t, stdout, "double")
	assert.Contains(t, stdout, "250ms")
}

func TestPresetShowPrintsFullConfiguration(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"preset", "save", "farm",
		"--x", "100", "--y", "200",
		"--clicks", "500",
		"--randomize", "--variance", "3",
	)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "preset", "show", "farm")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name:          farm")
	assert.Contains(t, stdout, "destination:   100,200")
	assert.Contains(t, stdout, "max clicks:    500")
	assert.Contains(t, stdout, "randomize")
}

func TestPresetSaveRejectsInvalidConfiguration(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(),
		"preset", "save", "broken",
		"--randomize", "--variance", "-1",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid click configuration")
}

func TestPresetDeleteRemovesPreset(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "preset", "save", "tmp", "--x", "1", "--y", "1")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "preset", "delete", "tmp")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "preset", "show", "tmp")
	require.Error(t, err)
}

func TestPresetDeleteUnknownNameFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "preset", "delete", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestPresetListEmptyStateMessage(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no presets saved")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
