package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execClock(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewClockCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestClock_SimpleAdvance(t *testing.T) {
	buf, err := execClock(t, "text", "--ticks", "75", "--from", "08:30:15")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "08:30:15 + 75 tick(s) = 08:31:30 (0 day boundary(ies))")
}

func TestClock_DayRollover(t *testing.T) {
	buf, err := execClock(t, "json", "--ticks", "30", "--from", "23:59:45")
	require.NoError(t, err)

	var resp struct {
		Data ClockResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "00:00:15", resp.Data.Time)
	assert.Equal(t, 1, resp.Data.Days)
}

func TestClock_MinuteAndHourCarries(t *testing.T) {
	buf, err := execClock(t, "json", "--ticks", "3661", "--from", "00:00:00")
	require.NoError(t, err)

	var resp struct {
		Data ClockResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "01:01:01", resp.Data.Time)
	assert.Equal(t, 0, resp.Data.Days)
}

func TestClock_ZeroTicks(t *testing.T) {
	buf, err := execClock(t, "text", "--ticks", "0", "--from", "12:00:00")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "= 12:00:00")
}

func TestClock_InvalidFromFormat(t *testing.T) {
	_, err := execClock(t, "text", "--ticks", "1", "--from", "noon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeBadRequest)
}

func TestClock_FromOutOfRange(t *testing.T) {
	_, err := execClock(t, "text", "--ticks", "1", "--from", "25:00:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeBadRequest)
	assert.Contains(t, err.Error(), "25:00:00")
}
