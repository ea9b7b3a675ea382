package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jscan"
	g "github.com/reoring/jscan/dsl"
)

func TestObject_FieldOrderAndNesting(t *testing.T) {
	tpl := g.Object().
		Field("name", g.String()).
		Field("address", g.Object().
			Field("street", g.String()).
			Field("city", g.String())).
		Field("skills", g.Array(g.Object().
			Field("name", g.String()).
			Field("level", g.Number()))).
		Field("tags", g.ArrayAny()).
		Template()

	assert.Equal(t, []string{"name", "address", "skills", "tags"}, tpl.Fields.Names())

	d, ok := tpl.Lookup(jscan.MustParseFieldPath("skills[].level"))
	require.True(t, ok)
	assert.Equal(t, "number", d.TypeName())

	tags, ok := tpl.Fields.Get("tags")
	require.True(t, ok)
	assert.Nil(t, tags.(jscan.ArrayType).Items)
}

func TestObject_ReplaceKeepsPosition(t *testing.T) {
	tpl := g.Object().
		Field("a", g.String()).
		Field("b", g.Bool()).
		Field("a", g.Number()).
		Without("b").
		Template()

	assert.Equal(t, []string{"a"}, tpl.Fields.Names())
	assert.Equal(t, "number", tpl.ExpectedType(jscan.MustParseFieldPath("a")))
}

func TestType_EditorDefaults(t *testing.T) {
	assert.Equal(t, jscan.ObjectType{}, g.Type("object").Descriptor())
	assert.Equal(t, jscan.ArrayType{Items: jscan.String()}, g.Type("array").Descriptor())
	assert.Equal(t, jscan.PrimitiveType{Name: "date"}, g.Type("date").Descriptor())
	assert.Equal(t, jscan.ArrayType{Items: jscan.String()}, g.Array(nil).Descriptor())
}

func TestMustParse(t *testing.T) {
	tpl := g.MustParse(`{"id":"number","user":{"type":"object","properties":{"email":{"type":"string"}}}}`)
	assert.Equal(t, "string", tpl.ExpectedType(jscan.MustParseFieldPath("user.email")))

	assert.Panics(t, func() { g.MustParse(`[1,2]`) })
}
