// File: cmd/record_test.go
package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRecord(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRecordCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRecordCommandDryRun(t *testing.T) {
	out, err := runRecord(t, "https://example.com", "--dry")
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "1366")
	assert.Contains(t, out, "chromium")
}

func TestRecordCommandFlagsReachTheNormalizer(t *testing.T) {
	out, err := runRecord(t, "https://example.com", "--dry",
		"--width", "1920",
		"--cookies", `{"name": "sid", "value": "abc"}`,
		"--connection", "3g",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "1920")
	assert.Contains(t, out, "sid")
	assert.Contains(t, out, "3g")
}

func TestRecordCommandRejectsBadOptions(t *testing.T) {
	t.Run("malformed cookie JSON", func(t *testing.T) {
		_, err := runRecord(t, "https://example.com", "--cookies", `{'sid': 'abc'}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid JSON")
		assert.Contains(t, err.Error(), "--cookies")
	})

	t.Run("non-numeric width", func(t *testing.T) {
		_, err := runRecord(t, "https://example.com", "--width", "wide")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--width")
	})

	t.Run("single-quoted block entry", func(t *testing.T) {
		_, err := runRecord(t, "https://example.com", "--block", `[ 'one', 'two' ]`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Problem parsing")
	})

	t.Run("missing url argument", func(t *testing.T) {
		_, err := runRecord(t)
		require.Error(t, err)
	})
}
