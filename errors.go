package shapegen

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType       = "invalid_type"
	CodeRequired          = "required"
	CodeMalformedTree     = "malformed_tree"
	CodeDuplicateKey      = "duplicate_key"
	CodeConflictingConfig = "conflicting_config"
	CodeParseError        = "parse_error"
)

// Issue represents a single finding, either a validation violation or a
// structural defect in the input tree.
type Issue struct {
	Path     string // JSON Pointer (for example: /items/2/price).
	Code     string // One of the codes listed above.
	Severity Severity
	Message  string
	Hint     string // Optional: remediation hints.
	Cause    error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"number", "got":"string"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueAt creates an Error-severity Issue at the given pointer with provided
// code, message and params map. Convenience helper for call sites with many
// parameters.
func IssueAt(ptr, code, msg string, params map[string]any) Issue {
	return Issue{Path: ptr, Code: code, Severity: Error, Message: msg, Params: params}
}

func singleIssue(ptr, code, msg string) Issues {
	return Issues{{Path: ptr, Code: code, Severity: Error, Message: msg}}
}
