// File: internal/config/schema/parse.go
package schema

import (
	"fmt"

	json "github.com/json-iterator/go"
)

// Parse decodes a raw option string as strict JSON and validates the result
// against the given schema. The flag name appears in every failure so the
// user can tell which option to fix. Malformed JSON (including an empty
// string, single quotes, unquoted keys or trailing commas) fails at the
// decode stage and is never repaired.
func Parse[T any](flag, raw string, s Schema[T]) (T, error) {
	var zero T
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return zero, fmt.Errorf("Invalid JSON provided for %s: %s", flag, err.Error())
	}
	return Validate(flag, decoded, s)
}

// Validate runs an already-structured value through the given schema,
// skipping the JSON decode stage. Programmatic callers that hand over typed
// values land here; the failure contract is identical to Parse minus the
// syntax error mode.
func Validate[T any](flag string, v any, s Schema[T]) (T, error) {
	typed, issues := s.Check(v)
	if len(issues) > 0 {
		var zero T
		return zero, fmt.Errorf("Invalid data provided for %s:\n%s", flag, FormatIssues(issues))
	}
	return typed, nil
}
