package jscan

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SegmentKind tells what a path segment addresses.
type SegmentKind uint8

const (
	// SegmentField addresses an object member by name.
	SegmentField SegmentKind = iota
	// SegmentIndex addresses an array element by 1-based position.
	SegmentIndex
	// SegmentItems addresses the item descriptor of an array field in a
	// template. It renders as "[]".
	SegmentItems
)

// Segment is one step of a FieldPath.
type Segment struct {
	Kind  SegmentKind
	Name  string // SegmentField only.
	Index int    // SegmentIndex only, 1-based.
}

func (s Segment) String() string {
	switch s.Kind {
	case SegmentIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	case SegmentItems:
		return "[]"
	default:
		return s.Name
	}
}

// FieldPath addresses a location inside a template or data value. The zero
// value is the root. FieldPath values are immutable: every builder returns a
// new path.
type FieldPath struct {
	segs []Segment
}

// Root returns the empty path.
func Root() FieldPath { return FieldPath{} }

// Field appends a field-name segment.
func (p FieldPath) Field(name string) FieldPath { return p.with(Segment{Kind: SegmentField, Name: name}) }

// Index appends an array-item segment; n is the 1-based item number.
func (p FieldPath) Index(n int) FieldPath { return p.with(Segment{Kind: SegmentIndex, Index: n}) }

// Items appends the item-descriptor segment used to address array item
// templates.
func (p FieldPath) Items() FieldPath { return p.with(Segment{Kind: SegmentItems}) }

func (p FieldPath) with(s Segment) FieldPath {
	segs := make([]Segment, len(p.segs), len(p.segs)+1)
	copy(segs, p.segs)
	return FieldPath{segs: append(segs, s)}
}

// Len returns the number of segments.
func (p FieldPath) Len() int { return len(p.segs) }

// IsRoot reports whether p has no segments.
func (p FieldPath) IsRoot() bool { return len(p.segs) == 0 }

// Segments returns a copy of the segments.
func (p FieldPath) Segments() []Segment { return append([]Segment(nil), p.segs...) }

// Last returns the final segment and the path leading to it. It returns false
// for the root.
func (p FieldPath) Last() (FieldPath, Segment, bool) {
	if len(p.segs) == 0 {
		return p, Segment{}, false
	}
	n := len(p.segs) - 1
	return FieldPath{segs: p.segs[:n:n]}, p.segs[n], true
}

// String renders the path: names joined by ".", item segments appended
// directly as "[n]" or "[]". The root renders as "".
func (p FieldPath) String() string {
	var b strings.Builder
	for i, s := range p.segs {
		if s.Kind == SegmentField && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// WithRow renders the path with a "row N: " prefix when row is positive.
func (p FieldPath) WithRow(row int) string {
	if row <= 0 {
		return p.String()
	}
	return "row " + strconv.Itoa(row) + ": " + p.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p FieldPath) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *FieldPath) UnmarshalText(b []byte) error {
	v, err := ParseFieldPath(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseFieldPath parses the rendered form produced by FieldPath.String.
// Field names may not contain '.', '[' or ']'.
func ParseFieldPath(s string) (FieldPath, error) {
	var p FieldPath
	if s == "" {
		return p, nil
	}
	i := 0
	for {
		// a name is required at the start and after every '.'
		start := i
		for i < len(s) && s[i] != '.' && s[i] != '[' && s[i] != ']' {
			i++
		}
		if i == start {
			return FieldPath{}, errors.Wrapf(ErrInvalidPath, "%q: empty field name at offset %d", s, start)
		}
		p.segs = append(p.segs, Segment{Kind: SegmentField, Name: s[start:i]})
		for i < len(s) && s[i] == '[' {
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return FieldPath{}, errors.Wrapf(ErrInvalidPath, "%q: unterminated '[' at offset %d", s, i)
			}
			body := s[i+1 : i+end]
			if body == "" {
				p.segs = append(p.segs, Segment{Kind: SegmentItems})
			} else {
				n, err := strconv.Atoi(body)
				if err != nil || n < 1 || body[0] == '+' {
					return FieldPath{}, errors.Wrapf(ErrInvalidPath, "%q: index %q must be a positive integer", s, body)
				}
				p.segs = append(p.segs, Segment{Kind: SegmentIndex, Index: n})
			}
			i += end + 1
		}
		if i == len(s) {
			return p, nil
		}
		if s[i] != '.' {
			return FieldPath{}, errors.Wrapf(ErrInvalidPath, "%q: unexpected %q at offset %d", s, s[i], i)
		}
		i++
		if i == len(s) {
			return FieldPath{}, errors.Wrapf(ErrInvalidPath, "%q: trailing '.'", s)
		}
	}
}

// MustParseFieldPath is ParseFieldPath that panics on error. It is meant for
// constant paths.
func MustParseFieldPath(s string) FieldPath {
	p, err := ParseFieldPath(s)
	if err != nil {
		panic(err)
	}
	return p
}
