package report

import (
	"github.com/google/uuid"

	"github.com/reoring/jscan"
)

// Result is the outcome of checking one data source.
type Result struct {
	RunID  string       `json:"runID" yaml:"runID"`
	Mode   jscan.Mode   `json:"mode" yaml:"mode"`
	Source string       `json:"source" yaml:"source"`
	Issues jscan.Issues `json:"issues" yaml:"issues"`
}

// NewResult stamps a fresh run ID on the issues found in source.
func NewResult(mode jscan.Mode, source string, iss jscan.Issues) Result {
	if iss == nil {
		iss = jscan.Issues{}
	}
	return Result{
		RunID:  uuid.New().String(),
		Mode:   mode,
		Source: source,
		Issues: iss,
	}
}
