package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "voxwfc", cmd.Use)
	assert.Contains(t, cmd.Long, "exemplar")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"solve", "adjacency", "replay", "runs"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestSolveCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	solve, _, err := cmd.Find([]string{"solve"})
	require.NoError(t, err)

	defaults := map[string]string{
		"size":           "",
		"seed":           "0",
		"retries":        "0",
		"workers":        "1",
		"policy":         "",
		"self-adjacency": "false",
		"max-steps":      "0",
		"db":             "",
	}
	for name, def := range defaults {
		f := solve.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}
}

func TestRun_Success(t *testing.T) {
	path := writeDoc(t, "pair.yaml", pairDoc)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	code := run(context.Background(), &RootOptions{NewID: fixedID("run-0001")},
		[]string{"solve", path}, stdout, stderr)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout.String(), "z=0 y=0: A B")
	assert.Contains(t, stderr.String(), "solve finished")
}

func TestRun_VerboseLogsSteps(t *testing.T) {
	path := writeDoc(t, "line.yaml", lineDoc)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	code := Run(context.Background(), []string{"-v", "solve", path, "--self-adjacency", "--size", "4,1,1"}, stdout, stderr)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr.String(), "level=DEBUG")
	assert.Contains(t, stderr.String(), "collapsed cell")
}

func TestRun_SolveFailureNotRepeated(t *testing.T) {
	path := writeDoc(t, "pair.yaml", pairDoc)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	code := Run(context.Background(), []string{"solve", path, "--size", "3,1,1"}, stdout, stderr)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout.String(), "status: failed")
	assert.NotContains(t, stderr.String(), "Error [")
}

func TestRun_JSONErrorEnvelope(t *testing.T) {
	path := writeDoc(t, "bad.yaml", "layers:\n  - - \"a b\"\n    - \"a\"\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	code := Run(context.Background(), []string{"--format", "json", "solve", path}, stdout, stderr)
	assert.Equal(t, ExitCommandError, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidInput, resp.Error.Code)
}

func TestRun_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"InvalidFormat":  {"--format", "xml", "runs", "--db", "x.db"},
		"UnknownCommand": {"frobnicate"},
		"MissingArg":     {"solve"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			code := Run(context.Background(), args, stdout, stderr)
			assert.Equal(t, ExitCommandError, code)
			assert.Contains(t, stderr.String(), "Error [")
		})
	}
}
