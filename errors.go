package jscan

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// IssueType classifies an Issue. The values are the display names used by
// reports.
type IssueType string

const (
	MissingField    IssueType = "Missing Field"
	AdditionalField IssueType = "Additional Field"
	TypeMismatch    IssueType = "Type Mismatch"
	ParseError      IssueType = "Parse Error"
	// DepthExceeded marks a subtree the engine refused to descend into.
	DepthExceeded IssueType = "Depth Exceeded"
)

// Fixed type labels used in issues.
const (
	ActualMissing     = "Missing"
	ExpectedUndefined = "Not defined"
	UnknownType       = "unknown"
)

// Issue is one discrepancy between a template and a data value.
type Issue struct {
	// Field is the display path, prefixed with "row N: " for record arrays.
	Field        string    `json:"field" yaml:"field"`
	ExpectedType string    `json:"expectedType" yaml:"expectedType"`
	ActualType   string    `json:"actualType" yaml:"actualType"`
	IssueType    IssueType `json:"issueType" yaml:"issueType"`
	Message      string    `json:"message,omitempty" yaml:"message,omitempty"`
	// Row is the 1-based record number, 0 when the data root is not an array.
	Row int `json:"row,omitempty" yaml:"row,omitempty"`
}

// Issues is an ordered collection of findings that implements error.
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
		// e.g. Type Mismatch at skills[1].level
		fmt.Fprintf(b, "%s at %s", it.IssueType, it.Field)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Fields returns the Field of every issue, in order.
func (iss Issues) Fields() []string {
	out := make([]string, len(iss))
	for i := range iss {
		out[i] = iss[i].Field
	}
	return out
}

// OfType returns the issues of the given type, in order.
func (iss Issues) OfType(t IssueType) Issues {
	out := Issues{}
	for _, it := range iss {
		if it.IssueType == t {
			out = append(out, it)
		}
	}
	return out
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

// AsIssues extracts Issues from an error.
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

// ParseErrorIssue is the single issue reported when data text cannot be
// parsed.
func ParseErrorIssue(err error) Issue {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Issue{
		Field:        "JSON Parse Error",
		ExpectedType: "Valid JSON",
		ActualType:   "Invalid JSON",
		IssueType:    ParseError,
		Message:      msg,
	}
}

// Sentinel errors.
var (
	// ErrEmptyInput is returned by ParseData for blank input.
	ErrEmptyInput = errors.New("jscan: empty input")
	// ErrInvalidPath reports a field path that cannot be parsed.
	ErrInvalidPath = errors.New("jscan: invalid field path")
	// ErrPathNotFound reports a template path whose parent does not exist.
	ErrPathNotFound = errors.New("jscan: path not found")
	// ErrNotContainer reports a template path that descends through a
	// primitive field.
	ErrNotContainer = errors.New("jscan: not an object or array field")
	// ErrInvalidTemplate reports a template document that cannot be decoded.
	ErrInvalidTemplate = errors.New("jscan: invalid template")
)
