package jsonschema_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jscan"
	g "github.com/reoring/jscan/dsl"
	"github.com/reoring/jscan/jsonschema"
)

func parse(t *testing.T, text string) any {
	t.Helper()
	v, err := jscan.ParseBytes(context.Background(), []byte(text))
	require.NoError(t, err)
	return v
}

func TestFromTemplate(t *testing.T) {
	tpl := g.Object().
		Field("id", g.Number()).
		Field("meta", g.Object().Field("at", g.Type("date"))).
		Field("tags", g.Array(g.Object().Field("k", g.String()))).
		Field("any", g.Of(jscan.PrimitiveType{})).
		Template()

	b, err := json.Marshal(jsonschema.FromTemplate(tpl))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"id": {"type": "number"},
			"meta": {
				"type": "object",
				"properties": {"at": {"format": "date"}},
				"required": ["at"],
				"additionalProperties": false
			},
			"tags": {
				"type": "array",
				"items": {"type": "object", "properties": {"k": {"type": "string"}}}
			},
			"any": {}
		},
		"required": ["id", "meta", "tags", "any"],
		"additionalProperties": false
	}`, string(b))
}

func TestImport(t *testing.T) {
	doc := parse(t, `{
		"type": "object",
		"properties": {
			"zeta": {"type": "integer"},
			"alpha": {"type": ["string", "null"]},
			"addr": {"$ref": "#/$defs/address"},
			"list": {"type": "array", "items": {"$ref": "#/$defs/address"}},
			"loose": {"type": "array"},
			"free": {}
		},
		"required": ["zeta", "alpha", "addr", "list", "loose"],
		"$defs": {
			"address": {"properties": {"city": {"type": "string"}}, "required": ["city"]}
		}
	}`)
	tpl, diag, err := jsonschema.Import(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "addr", "list", "loose", "free"}, tpl.Fields.Names())
	assert.Equal(t, "number", tpl.ExpectedType(jscan.MustParseFieldPath("zeta")))
	assert.Equal(t, "string", tpl.ExpectedType(jscan.MustParseFieldPath("alpha")))
	assert.Equal(t, "string", tpl.ExpectedType(jscan.MustParseFieldPath("addr.city")))
	assert.Equal(t, "string", tpl.ExpectedType(jscan.MustParseFieldPath("list[].city")))
	loose, _ := tpl.Lookup(jscan.MustParseFieldPath("loose"))
	assert.Equal(t, jscan.ArrayType{}, loose)
	assert.Equal(t, "unknown", tpl.ExpectedType(jscan.MustParseFieldPath("free")))
	assert.Equal(t, jsonschema.Diag{"(root): optional properties free will be reported when missing"}, diag)
}

func TestImport_Wrappers(t *testing.T) {
	crd := parse(t, `{
		"kind": "CustomResourceDefinition",
		"spec": {"versions": [
			{"name": "v1alpha1", "served": false, "schema": {"openAPIV3Schema": {"type": "object", "properties": {"old": {"type": "string"}}}}},
			{"name": "v1", "served": true, "schema": {"openAPIV3Schema": {"type": "object", "properties": {"spec": {"type": "object", "x-kubernetes-int-or-string": true}}}}}
		]}
	}`)
	tpl, diag, err := jsonschema.Import(crd)
	require.NoError(t, err)
	assert.Equal(t, []string{"spec"}, tpl.Fields.Names())
	assert.Contains(t, diag, "spec: int-or-string left untyped")

	wrapped := map[string]any{"openAPIV3Schema": map[string]any{
		"properties": map[string]any{"b": map[string]any{"type": "boolean"}, "a": map[string]any{"type": "string"}},
	}}
	tpl, _, err = jsonschema.Import(wrapped)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tpl.Fields.Names(), "plain maps import in sorted order")
}

func TestImport_Errors(t *testing.T) {
	for _, doc := range []string{
		`[1]`,
		`{"type": "string"}`,
		`{"properties": {"a": {"$ref": "#/$defs/missing"}}}`,
		`{"properties": {"a": 5}}`,
	} {
		_, _, err := jsonschema.Import(parse(t, doc))
		if assert.Error(t, err, doc) {
			assert.True(t, errors.Is(err, jscan.ErrInvalidTemplate), "%s: %v", doc, err)
		}
	}
}

func TestImport_RecursiveRef(t *testing.T) {
	doc := parse(t, `{"properties": {"node": {"$ref": "#/definitions/node"}}, "required": ["node"],
		"definitions": {"node": {"properties": {"next": {"$ref": "#/definitions/node"}}, "required": ["next"]}}}`)
	tpl, diag, err := jsonschema.Import(doc)
	require.NoError(t, err)
	next, ok := tpl.Lookup(jscan.MustParseFieldPath("node.next"))
	require.True(t, ok)
	assert.Equal(t, jscan.ObjectType{}, next)
	assert.Len(t, diag, 1)
}

func TestRoundTrip(t *testing.T) {
	in := jscan.SampleTemplate()
	b, err := json.Marshal(jsonschema.FromTemplate(in))
	require.NoError(t, err)

	out, diag, err := jsonschema.Import(parse(t, string(b)))
	require.NoError(t, err)
	assert.Empty(t, diag)
	assert.ElementsMatch(t, in.Fields.Names(), out.Fields.Names())
	for _, leaf := range in.Leaves() {
		assert.Equal(t, in.ExpectedType(leaf), out.ExpectedType(leaf), leaf.String())
	}
}
