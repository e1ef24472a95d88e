// File: internal/config/schema/parse_test.go
package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsMalformedJSON(t *testing.T) {
	malformed := map[string]string{
		"empty string":    ``,
		"single quotes":   `{'name': 'session'}`,
		"trailing comma":  `{"name": "session",}`,
		"unquoted keys":   `{name: "session"}`,
		"bare fragment":   `{"name": "sess`,
		"two documents":   `{"a": 1}{"b": 2}`,
		"single-quote ar": `[ 'one', 'two' ]`,
	}

	for name, raw := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("--cookies", raw, Cookies)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Invalid JSON")
			assert.Contains(t, err.Error(), "--cookies")
		})
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	t.Run("missing required field", func(t *testing.T) {
		_, err := Parse("--cookies", `{"name": "session"}`, Cookies)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid data")
		assert.Contains(t, err.Error(), "--cookies")
		assert.Contains(t, err.Error(), "  - value: is required")
	})

	t.Run("scalar where container expected", func(t *testing.T) {
		// Valid JSON, wrong shape: fails at the schema stage, not the JSON stage.
		_, err := Parse("--headers", `"just a string"`, Headers)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid data")
		assert.NotContains(t, err.Error(), "Invalid JSON")
		assert.Contains(t, err.Error(), "(root)")
	})

	t.Run("one issue per invalid array element", func(t *testing.T) {
		_, err := Parse("--block", `["ads", 42, "trackers", false]`, StringList)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "  - 1: must be a string")
		assert.Contains(t, err.Error(), "  - 3: must be a string")
		assert.NotContains(t, err.Error(), "  - 0:")
		assert.NotContains(t, err.Error(), "  - 2:")
	})
}

func TestParsePreservesStructure(t *testing.T) {
	t.Run("array element order", func(t *testing.T) {
		cookies, err := Parse("--cookies", `[
			{"name": "first", "value": "1"},
			{"name": "second", "value": "2"},
			{"name": "third", "value": "3"}
		]`, Cookies)
		require.NoError(t, err)
		require.Len(t, cookies, 3)
		assert.Equal(t, "first", cookies[0].Name)
		assert.Equal(t, "second", cookies[1].Name)
		assert.Equal(t, "third", cookies[2].Name)
	})

	t.Run("unknown cookie fields ride along", func(t *testing.T) {
		cookies, err := Parse("--cookies", `{"name": "s", "value": "v", "priority": "High", "session": true}`, Cookies)
		require.NoError(t, err)
		require.Len(t, cookies, 1)
		assert.Equal(t, "High", cookies[0].Extra["priority"])
		assert.Equal(t, true, cookies[0].Extra["session"])
	})
}

func TestValidateSkipsJSONStage(t *testing.T) {
	t.Run("typed value accepted directly", func(t *testing.T) {
		headers, err := Validate("--headers", map[string]string{"X-Test": "1"}, Headers)
		require.NoError(t, err)
		assert.Equal(t, "1", headers["X-Test"])
	})

	t.Run("typed value failure uses the data contract", func(t *testing.T) {
		_, err := Validate("--auth", map[string]any{"username": "u"}, BasicAuth)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid data")
		assert.Contains(t, err.Error(), "--auth")
		assert.Contains(t, err.Error(), "password: is required")
	})
}
