package jscan

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Check parses src and validates the result against t. Blank input yields no
// issues. Input that cannot be parsed yields exactly one ParseError issue and
// the template is not consulted.
func Check(ctx context.Context, t Template, src Source, mode Mode, opts ...CheckOpt) Issues {
	opt := lastOpt(opts)
	data, err := ParseData(ctx, src, opt.Parse)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return Issues{}
		}
		return Issues{ParseErrorIssue(err)}
	}
	return Validate(t, data, mode, opt.Validate)
}

// CheckText is Check over a string with the current JSON driver.
func CheckText(ctx context.Context, t Template, text string, mode Mode, opts ...CheckOpt) Issues {
	if strings.TrimSpace(text) == "" {
		return Issues{}
	}
	opt := lastOpt(opts)
	data, err := ParseBytes(ctx, []byte(text), opt.Parse)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return Issues{}
		}
		return Issues{ParseErrorIssue(err)}
	}
	return Validate(t, data, mode, opt.Validate)
}
