package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execPowerset(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewPowersetCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestPowerset_TwoItems(t *testing.T) {
	buf, err := execPowerset(t, "text", "a", "b")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"{}", "{a}", "{b}", "{a b}", "4 subset(s)"}, lines)
}

func TestPowerset_JSON(t *testing.T) {
	buf, err := execPowerset(t, "json", "x", "y", "z")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   PowersetResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 8, resp.Data.Count)
	assert.Equal(t, [][]string{
		{}, {"x"}, {"y"}, {"x", "y"},
		{"z"}, {"x", "z"}, {"y", "z"}, {"x", "y", "z"},
	}, resp.Data.Subsets)
}

func TestPowerset_SingleItem(t *testing.T) {
	buf, err := execPowerset(t, "text", "only")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 subset(s)")
}

func TestPowerset_TooManyItems(t *testing.T) {
	items := make([]string, maxPowersetItems+1)
	for i := range items {
		items[i] = "x"
	}

	_, err := execPowerset(t, "text", items...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeBadRequest)
}
