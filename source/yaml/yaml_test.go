package yaml_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/reoring/jscan"
	eng "github.com/reoring/jscan/internal/engine"
	yamlsrc "github.com/reoring/jscan/source/yaml"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := jscan.ParseData(context.Background(), yamlsrc.NewBytes([]byte(doc)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return v
}

func TestYAML_ScalarsAndOrder(t *testing.T) {
	v := decode(t, `
name: Ada
age: 36
ratio: 0.5
hex: 0x1F
active: yes
quoted: "true"
nothing: ~
when: 2024-01-01
list: [1, two, false]
`)
	b, err := jscan.MarshalData(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Ada","age":36,"ratio":0.5,"hex":31,"active":"yes","quoted":"true","nothing":null,"when":"2024-01-01","list":[1,"two",false]}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
	obj := v.(*jscan.Object)
	if age, _ := obj.Get("age"); age != json.Number("36") {
		t.Fatalf("age: %#v", age)
	}
}

func TestYAML_MultiDocumentIsArray(t *testing.T) {
	v := decode(t, "a: 1\n---\na: 2\n---\n- x\n")
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		t.Fatalf("expected 3 documents, got %#v", v)
	}
	if _, ok := arr[2].([]any); !ok {
		t.Fatalf("third document should be a sequence, got %#v", arr[2])
	}
}

func TestYAML_Aliases(t *testing.T) {
	v := decode(t, "base: &b {x: 1}\ncopy: *b\n")
	b, _ := jscan.MarshalData(v)
	if string(b) != `{"base":{"x":1},"copy":{"x":1}}` {
		t.Fatalf("got %s", b)
	}
}

func TestYAML_EmptyStream(t *testing.T) {
	src := yamlsrc.NewReader(strings.NewReader("# only a comment\n"))
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if _, err := jscan.ParseData(context.Background(), yamlsrc.NewBytes(nil)); !errors.Is(err, jscan.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestYAML_SyntaxError(t *testing.T) {
	_, err := jscan.ParseData(context.Background(), yamlsrc.NewBytes([]byte("a: [1, 2\n")))
	if err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestYAML_LocationIsLine(t *testing.T) {
	src := yamlsrc.NewBytes([]byte("a: 1\nb: 2\n"))
	if loc := src.Location(); loc != -1 {
		t.Fatalf("location before first token: %d", loc)
	}
	var last eng.Token
	for {
		tok, err := src.NextToken()
		if err != nil {
			break
		}
		last = tok
		if tok.Kind == eng.KindKey && tok.String == "b" && src.Location() != 2 {
			t.Fatalf("key b on line %d", src.Location())
		}
	}
	if last.Kind != eng.KindEndObject {
		t.Fatalf("last token %s", last.Kind)
	}
}

func TestDriver(t *testing.T) {
	d := yamlsrc.Driver()
	if d.Name() != "yaml.v3" {
		t.Fatalf("name: %s", d.Name())
	}
	v, err := jscan.ParseData(context.Background(), d.NewReader(strings.NewReader("k: v")))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, _ := v.(*jscan.Object).Get("k"); got != "v" {
		t.Fatalf("got %#v", got)
	}
}
