// Package yaml adapts YAML documents to the jscan token stream so templates and
// data can be authored in YAML. Mapping order is preserved. A stream with more
// than one document is presented as a top-level array with one element per
// document.
package yaml

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jscan"
	eng "github.com/reoring/jscan/internal/engine"
)

// Driver returns a jscan.JSONDriver that reads YAML.
func Driver() jscan.JSONDriver { return driverYAML{} }

type driverYAML struct{}

func (driverYAML) NewReader(r io.Reader) jscan.Source { return NewReader(r) }
func (driverYAML) NewBytes(b []byte) jscan.Source     { return NewBytes(b) }
func (driverYAML) Name() string                       { return "yaml.v3" }

// NewReader wraps an io.Reader of YAML into an engine.TokenSource.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

// NewBytes wraps YAML bytes into an engine.TokenSource.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

type source struct {
	r      io.Reader
	loaded bool
	toks   []eng.Token
	pos    int
	line   int64
}

func (s *source) NextToken() (eng.Token, error) {
	if !s.loaded {
		s.loaded = true
		toks, err := load(s.r)
		if err != nil {
			return eng.Token{}, err
		}
		s.toks = toks
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	s.line = t.Offset
	return t, nil
}

// Location reports the line of the last token, YAML has no stable byte offsets.
func (s *source) Location() int64 {
	if s.pos == 0 {
		return -1
	}
	return s.line
}

func load(r io.Reader) ([]eng.Token, error) {
	dec := yaml.NewDecoder(r)
	var docs []*yaml.Node
	for {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(root.Content) == 0 {
			continue
		}
		docs = append(docs, root.Content[0])
	}
	var out []eng.Token
	switch len(docs) {
	case 0:
		return nil, nil
	case 1:
		return emit(out, docs[0], 0)
	}
	out = append(out, eng.Token{Kind: eng.KindBeginArray, Offset: int64(docs[0].Line)})
	for _, d := range docs {
		var err error
		if out, err = emit(out, d, 0); err != nil {
			return nil, err
		}
	}
	return append(out, eng.Token{Kind: eng.KindEndArray, Offset: int64(docs[len(docs)-1].Line)}), nil
}

// maxAliasDepth guards against alias chains that refer back to themselves.
const maxAliasDepth = 64

func emit(out []eng.Token, n *yaml.Node, aliases int) ([]eng.Token, error) {
	off := int64(n.Line)
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return append(out, eng.Token{Kind: eng.KindNull, Offset: off}), nil
		}
		return emit(out, n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return nil, errors.Errorf("yaml: alias nesting too deep at line %d", n.Line)
		}
		return emit(out, n.Alias, aliases+1)
	case yaml.MappingNode:
		out = append(out, eng.Token{Kind: eng.KindBeginObject, Offset: off})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			out = append(out, eng.Token{Kind: eng.KindKey, String: k.Value, Offset: int64(k.Line)})
			var err error
			if out, err = emit(out, n.Content[i+1], aliases); err != nil {
				return nil, err
			}
		}
		return append(out, eng.Token{Kind: eng.KindEndObject, Offset: off}), nil
	case yaml.SequenceNode:
		out = append(out, eng.Token{Kind: eng.KindBeginArray, Offset: off})
		for _, c := range n.Content {
			var err error
			if out, err = emit(out, c, aliases); err != nil {
				return nil, err
			}
		}
		return append(out, eng.Token{Kind: eng.KindEndArray, Offset: off}), nil
	case yaml.ScalarNode:
		return append(out, scalar(n)), nil
	default:
		return append(out, eng.Token{Kind: eng.KindNull, Offset: off}), nil
	}
}

func scalar(n *yaml.Node) eng.Token {
	off := int64(n.Line)
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull, Offset: off}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return eng.Token{Kind: eng.KindBool, Bool: b, Offset: off}
		}
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10), Offset: off}
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: off}
		}
	}
	return eng.Token{Kind: eng.KindString, String: n.Value, Offset: off}
}
