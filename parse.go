package jscan

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	eng "github.com/reoring/jscan/internal/engine"
)

// ParseData decodes one JSON value from src. Objects become *Object so member
// order is kept, numbers become json.Number. A repeated key keeps its first
// position and its last value unless opt.Strictness says otherwise. Blank
// input returns ErrEmptyInput.
func ParseData(ctx context.Context, src Source, opts ...ParseOpt) (any, error) {
	if src == nil {
		return nil, ErrEmptyInput
	}
	in := prepare(ctx, src, lastOpt(opts))
	v, err := eng.DecodeOrdered(in)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, err
	}
	return v, nil
}

// prepare applies cancellation and the enforcement options to src.
func prepare(ctx context.Context, src Source, opt ParseOpt) Source {
	in := eng.WithContext(ctx, src)
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			logrus.Warnf("%s at %s", si.Message, si.Path)
			if opt.OnWarning != nil {
				opt.OnWarning(si.Path, si.Message)
			}
		},
	}
	if eo.Enabled() {
		in = eng.WrapWithEnforcement(in, eo)
	}
	return in
}

// ParseBytes decodes b with the current JSON driver. MaxBytes is checked
// before decoding so drivers that cannot report offsets are still bounded.
func ParseBytes(ctx context.Context, b []byte, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return nil, eng.IssueError{SimpleIssue: eng.SimpleIssue{Code: eng.CodeTruncated, Message: "max bytes exceeded"}}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrEmptyInput
	}
	return ParseData(ctx, JSONBytes(b), opts...)
}

// ParseReader decodes r with the current JSON driver. When MaxBytes is set it
// enforces the size cap up front, otherwise it streams through the driver.
func ParseReader(ctx context.Context, r io.Reader, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, errors.Wrap(err, "read data")
		}
		return ParseBytes(ctx, data, opts...)
	}
	return ParseData(ctx, JSONReader(r), opts...)
}
