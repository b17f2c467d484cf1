// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form validates untrusted CAP DCIS resection payloads into typed,
// canonical records. Validation is a pure function of the input: it never
// panics past its boundary and accumulates every defect it finds instead of
// stopping at the first one.
package form

import "fmt"

// Issue codes. Each validation defect carries one of these so callers can
// classify failures without parsing messages.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeInvalidEnum   = "invalid_enum"
	CodeUnknownTag    = "unknown_tag"
	CodeMissingTag    = "missing_tag"
	CodeOutOfRange    = "out_of_range"
	CodeConditional   = "conditional_rule"
	CodeInvalidFormat = "invalid_format"
)

// Issue is a single validation defect, qualified by the dotted path of the
// offending field.
type Issue struct {
	Path    string
	Code    string
	Message string
}

// String renders the issue as "path: message", the form surfaced to callers.
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// issueList accumulates issues during a validation pass.
type issueList struct {
	issues []Issue
}

func (l *issueList) add(path, code, format string, args ...any) {
	l.issues = append(l.issues, Issue{
		Path:    path,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *issueList) empty() bool { return len(l.issues) == 0 }

// messages renders the accumulated issues in the order they were found.
func (l *issueList) messages() []string {
	if len(l.issues) == 0 {
		return nil
	}
	out := make([]string, len(l.issues))
	for i, issue := range l.issues {
		out[i] = issue.String()
	}
	return out
}
