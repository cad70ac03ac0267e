package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRun(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestRun_TextTrace(t *testing.T) {
	buf, err := execRun(t, "text",
		filepath.Join("testdata", "pair.cue"), "--steps", "10", "--token", "run-1")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run run-1: pair, 10 step(s)")
	assert.Contains(t, out, "step 1: [1 0]")
	assert.Contains(t, out, "step 2: [0 1]")
	assert.Contains(t, out, "cycle at step 10: [0 0]")
	assert.Contains(t, out, "final: [0 0], resets: 1")
}

func TestRun_JSON(t *testing.T) {
	buf, err := execRun(t, "json",
		filepath.Join("testdata", "pair.cue"), "--steps", "3", "--token", "run-1")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "pair", resp.Data.Name)
	assert.Equal(t, "run-1", resp.Data.Token)
	assert.Equal(t, []int{1, 1}, resp.Data.Final)
	assert.Equal(t, 0, resp.Data.Resets)
}

func TestRun_DigestDeterministic(t *testing.T) {
	digest := func() string {
		buf, err := execRun(t, "json",
			filepath.Join("testdata", "pair.cue"), "--steps", "10", "--token", "run-1", "--digest")
		require.NoError(t, err)

		var resp struct {
			Data RunResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		return resp.Data.Digest
	}

	first := digest()
	second := digest()
	assert.Len(t, first, 64)
	assert.Equal(t, first, second, "same definition, same token, same digest")
}

func TestRun_StepsMustBePositive(t *testing.T) {
	_, err := execRun(t, "text",
		filepath.Join("testdata", "pair.cue"), "--steps", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeBadRequest)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_MissingDefinition(t *testing.T) {
	_, err := execRun(t, "text",
		filepath.Join(t.TempDir(), "missing.cue"), "--steps", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestRun_VerboseShowsCarries(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Verbose: true}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "pair.cue"), "--steps", "2", "--token", "run-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "carry digit 0 -> 0")
}
