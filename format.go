package jscan

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"

	eng "github.com/reoring/jscan/internal/engine"
)

// MarshalData encodes a data value compactly, keeping object member order.
func MarshalData(v any) ([]byte, error) { return eng.Marshal(v) }

// FormatJSON parses src and re-encodes it with the given indent, keeping
// member order. Duplicate keys collapse as in ParseData.
func FormatJSON(ctx context.Context, src Source, indent string, opts ...ParseOpt) ([]byte, error) {
	v, err := ParseData(ctx, src, opts...)
	if err != nil {
		return nil, err
	}
	return IndentData(v, indent)
}

// IndentData encodes a data value with the given indent and a trailing
// newline.
func IndentData(v any, indent string) ([]byte, error) {
	compact, err := eng.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode data")
	}
	var buf bytes.Buffer
	if err := j.Indent(&buf, compact, "", indent); err != nil {
		return nil, errors.Wrap(err, "indent data")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// CompactLength returns the length in bytes of the compact encoding of v, or
// -1 when v cannot be encoded.
func CompactLength(v any) int {
	b, err := eng.Marshal(v)
	if err != nil {
		return -1
	}
	return len(b)
}
