package jscan

import (
	"context"
	"io"

	"github.com/pkg/errors"

	eng "github.com/reoring/jscan/internal/engine"
)

// DuplicateKey is one repeated object member found by DetectDuplicateKeys.
type DuplicateKey struct {
	Path    string // display path of the repeated member, e.g. "address.city" or "[2].id"
	Message string
}

// DetectDuplicateKeys reads src to the end and lists repeated object members
// in input order. maxFound bounds the result; a negative value means no
// limit. Syntax errors are returned as errors.
func DetectDuplicateKeys(ctx context.Context, src Source, maxFound int) ([]DuplicateKey, error) {
	var found []DuplicateKey
	in := eng.WrapWithEnforcement(eng.WithContext(ctx, src), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink: func(si eng.SimpleIssue) {
			if maxFound >= 0 && len(found) >= maxFound {
				return
			}
			found = append(found, DuplicateKey{Path: si.Path, Message: si.Message})
		},
	})
	if _, err := eng.DecodeOrdered(in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, err
	}
	return found, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
