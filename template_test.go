package jscan_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jscan"
	g "github.com/reoring/jscan/dsl"
	yamlsrc "github.com/reoring/jscan/source/yaml"
)

var p = jscan.MustParseFieldPath

func TestFields_ImmutableOrdered(t *testing.T) {
	f := jscan.NewFields(jscan.Field{Name: "a", Type: jscan.String()}, jscan.Field{Name: "b", Type: jscan.Number()})
	f2 := f.With("c", jscan.Boolean())
	f3 := f2.With("a", jscan.Number())
	f4 := f3.Without("b")

	assert.Equal(t, []string{"a", "b"}, f.Names())
	assert.Equal(t, []string{"a", "b", "c"}, f2.Names())
	assert.Equal(t, []string{"a", "b", "c"}, f3.Names())
	assert.Equal(t, []string{"a", "c"}, f4.Names())

	d, _ := f2.Get("a")
	assert.Equal(t, "string", d.TypeName())
	d, _ = f3.Get("a")
	assert.Equal(t, "number", d.TypeName())
	assert.False(t, f4.Has("b"))
	assert.Equal(t, f4, f4.Without("zzz"))
}

func TestDescriptor_TypeNames(t *testing.T) {
	assert.Equal(t, "unknown", jscan.PrimitiveType{}.TypeName())
	assert.Equal(t, "date", jscan.PrimitiveType{Name: "date"}.TypeName())
	assert.Equal(t, "object", jscan.ObjectOf(jscan.Fields{}).TypeName())
	assert.Equal(t, "array", jscan.ArrayType{}.TypeName())
	assert.Equal(t, jscan.ArrayType{Items: jscan.String()}, jscan.ArrayOf(nil))
}

func TestDecodeTemplate_Forms(t *testing.T) {
	tpl := g.MustParse(`{
		"name": "string",
		"age": {"type": "number"},
		"blank": {},
		"meta": {"type": "object"},
		"tags": {"type": "array"},
		"list": "array",
		"skills": {"type": "array", "items": {"type": "object", "properties": {"level": "number"}}}
	}`)

	assert.Equal(t, []string{"name", "age", "blank", "meta", "tags", "list", "skills"}, tpl.Fields.Names())
	assert.Equal(t, "unknown", tpl.ExpectedType(p("blank")))

	meta, _ := tpl.Lookup(p("meta"))
	assert.Equal(t, jscan.ObjectType{}, meta)

	tags, _ := tpl.Lookup(p("tags"))
	assert.Nil(t, tags.(jscan.ArrayType).Items, "items absent means unchecked")

	list, _ := tpl.Lookup(p("list"))
	assert.Equal(t, jscan.ArrayType{Items: jscan.String()}, list, "shorthand uses editor defaults")

	assert.Equal(t, "number", tpl.ExpectedType(p("skills[].level")))
}

func TestDecodeTemplate_Invalid(t *testing.T) {
	ctx := context.Background()
	for _, doc := range []string{
		`[1]`,
		`"string"`,
		`{"a": 5}`,
		`{"a": {"type": 5}}`,
		`{"a": {"type": "object", "properties": []}}`,
		`{"a": {"type": "array", "items": true}}`,
	} {
		_, err := jscan.ParseTemplate(ctx, jscan.JSONString(doc))
		if assert.Error(t, err, doc) {
			assert.True(t, errors.Is(err, jscan.ErrInvalidTemplate), "%s: %v", doc, err)
		}
	}

	_, err := jscan.ParseTemplate(ctx, jscan.JSONString(`{"a":`))
	assert.Error(t, err)
}

func TestTemplate_MarshalJSONKeepsOrder(t *testing.T) {
	b, err := jscan.SampleTemplate().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"name":{"type":"string"},"age":{"type":"number"},"email":{"type":"string"},`+
		`"isActive":{"type":"boolean"},"address":{"type":"object","properties":{"street":{"type":"string"},`+
		`"city":{"type":"string"},"zipCode":{"type":"string"}}},"hobbies":{"type":"array"},`+
		`"metadata":{"type":"object","properties":{"createdAt":{"type":"string"},"updatedAt":{"type":"string"}}}}`, string(b))
}

func TestTemplate_JSONRoundTrip(t *testing.T) {
	in := g.Object().
		Field("z", g.Number()).
		Field("a", g.Array(g.Object().Field("y", g.Bool()).Field("b", g.String()))).
		Field("m", g.Type("object")).
		Template()

	var doc struct {
		Template jscan.Template `json:"template"`
	}
	b, err := json.Marshal(map[string]any{"template": in})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, in, doc.Template)
}

func TestTemplate_YAMLRoundTrip(t *testing.T) {
	in := jscan.SampleTemplate()
	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	back, err := jscan.ParseTemplate(context.Background(), yamlsrc.NewBytes(out))
	require.NoError(t, err)
	assert.Equal(t, in, back)
	assert.Equal(t, in.Fields.Names(), back.Fields.Names())
}

func TestTemplate_SetAndRemove(t *testing.T) {
	base := jscan.SampleTemplate()

	t1, err := base.Set(p("address.country"), jscan.String())
	require.NoError(t, err)
	assert.Equal(t, "string", t1.ExpectedType(p("address.country")))
	assert.Equal(t, "", base.ExpectedType(p("address.country")), "receiver unchanged")

	addr, _ := t1.Lookup(p("address"))
	assert.Equal(t, []string{"street", "city", "zipCode", "country"}, addr.(jscan.ObjectType).Properties.Names())

	t2, err := t1.Remove(p("address.city"))
	require.NoError(t, err)
	assert.Equal(t, "", t2.ExpectedType(p("address.city")))
	assert.Equal(t, "string", t1.ExpectedType(p("address.city")))

	t3, err := base.SetType(p("email"), "object")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "email", "isActive", "address", "hobbies", "metadata"}, t3.Fields.Names())
	d, _ := t3.Lookup(p("email"))
	assert.Equal(t, jscan.ObjectType{}, d)

	t4, err := t3.SetType(p("email"), "array")
	require.NoError(t, err)
	d, _ = t4.Lookup(p("email"))
	assert.Equal(t, jscan.ArrayType{Items: jscan.String()}, d)
}

func TestTemplate_EditItems(t *testing.T) {
	base := g.Object().
		Field("skills", g.Array(g.Object().Field("name", g.String()))).
		Field("hobbies", g.ArrayAny()).
		Template()

	t1, err := base.Set(p("skills[].level"), jscan.Number())
	require.NoError(t, err)
	assert.Equal(t, "number", t1.ExpectedType(p("skills[].level")))
	assert.Equal(t, "number", t1.ExpectedType(p("skills[3].level")), "data paths resolve through items")

	t2, err := base.Set(p("hobbies[]"), jscan.Number())
	require.NoError(t, err)
	assert.Equal(t, "number", t2.ExpectedType(p("hobbies[]")))

	_, err = base.Set(p("hobbies[].x"), jscan.Number())
	assert.True(t, errors.Is(err, jscan.ErrPathNotFound), "%v", err)

	_, err = base.Remove(p("skills[]"))
	assert.True(t, errors.Is(err, jscan.ErrInvalidPath), "%v", err)
}

func TestTemplate_EditErrors(t *testing.T) {
	base := jscan.SampleTemplate()
	cases := []struct {
		name string
		edit func() (jscan.Template, error)
		want error
	}{
		{"root", func() (jscan.Template, error) { return base.Set(jscan.Root(), jscan.String()) }, jscan.ErrInvalidPath},
		{"missing parent", func() (jscan.Template, error) { return base.Set(p("nope.x"), jscan.String()) }, jscan.ErrPathNotFound},
		{"through primitive", func() (jscan.Template, error) { return base.Set(p("name.x"), jscan.String()) }, jscan.ErrNotContainer},
		{"index segment", func() (jscan.Template, error) { return base.Set(p("hobbies[1]"), jscan.String()) }, jscan.ErrInvalidPath},
		{"items of object", func() (jscan.Template, error) { return base.Set(p("address[]"), jscan.String()) }, jscan.ErrNotContainer},
		{"remove absent", func() (jscan.Template, error) { return base.Remove(p("address.nope")) }, jscan.ErrPathNotFound},
		{"nil descriptor", func() (jscan.Template, error) { return base.Set(p("x"), nil) }, jscan.ErrInvalidTemplate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.edit()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "%v", err)
			assert.Equal(t, base, got)
		})
	}
}

func TestTemplate_Leaves(t *testing.T) {
	var got []string
	for _, l := range jscan.SampleTemplate().Leaves() {
		got = append(got, l.String())
	}
	assert.Equal(t, []string{
		"name", "age", "email", "isActive",
		"address.street", "address.city", "address.zipCode",
		"hobbies",
		"metadata.createdAt", "metadata.updatedAt",
	}, got)
}

func TestDiffTemplates(t *testing.T) {
	a := jscan.SampleTemplate()

	patch, err := jscan.DiffTemplates(a, a)
	require.NoError(t, err)
	assert.Empty(t, patch)

	b, err := a.Remove(p("email"))
	require.NoError(t, err)
	b, err = b.SetType(p("address.zipCode"), "number")
	require.NoError(t, err)

	patch, err = jscan.DiffTemplates(a, b)
	require.NoError(t, err)
	ops := map[string]string{}
	for _, op := range patch {
		ops[fmt.Sprint(op.Path)] = op.Type
	}
	assert.Equal(t, "remove", ops["/email"])
	assert.Equal(t, "replace", ops["/address/properties/zipCode/type"])
}
