// File: internal/config/schema/issues.go
package schema

import "strings"

// Issue describes a single validation failure inside an option value. Path
// holds the sequence of object keys and array indices leading to the
// offending element; an empty Path means the whole value failed.
type Issue struct {
	Path    []string
	Message string
}

func issuef(path []string, msg string) Issue {
	return Issue{Path: path, Message: msg}
}

// child returns path extended by one segment. It copies so sibling issues
// never alias the same backing array.
func child(path []string, segment string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, segment)
}

// FormatIssues renders a list of issues as a multi-line string, one line per
// issue, in the order the issues were produced. A field-level issue renders
// its dot-joined path; an issue with an empty path renders "(root)".
func FormatIssues(issues []Issue) string {
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		path := "(root)"
		if len(issue.Path) > 0 {
			path = strings.Join(issue.Path, ".")
		}
		lines = append(lines, "  - "+path+": "+issue.Message)
	}
	return strings.Join(lines, "\n")
}
