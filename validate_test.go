package jscan_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jscan"
	g "github.com/reoring/jscan/dsl"
)

func parse(t *testing.T, text string) any {
	t.Helper()
	v, err := jscan.ParseBytes(context.Background(), []byte(text))
	require.NoError(t, err)
	return v
}

func TestValidate_MissingField(t *testing.T) {
	tpl := g.Object().Field("a", g.String()).Field("b", g.Number()).Template()
	got := jscan.Validate(tpl, parse(t, `{"a":"x"}`), jscan.MissingOnly)
	assert.Equal(t, jscan.Issues{{
		Field:        "b",
		ExpectedType: "number",
		ActualType:   "Missing",
		IssueType:    jscan.MissingField,
	}}, got)
}

func TestValidate_AdditionalField(t *testing.T) {
	tpl := g.Object().Field("a", g.String()).Template()
	got := jscan.Validate(tpl, parse(t, `{"a":"x","z":42}`), jscan.AdditionalOnly)
	assert.Equal(t, jscan.Issues{{
		Field:        "z",
		ExpectedType: "Not defined",
		ActualType:   "number",
		IssueType:    jscan.AdditionalField,
	}}, got)
}

func TestValidate_ArrayItemTypes(t *testing.T) {
	tpl := g.MustParse(`{"skills":{"type":"array","items":{"type":"object","properties":{"level":{"type":"number"}}}}}`)
	got := jscan.Validate(tpl, parse(t, `{"skills":[{"level":"5"}]}`), jscan.TypesOnly)
	assert.Equal(t, jscan.Issues{{
		Field:        "skills[1].level",
		ExpectedType: "number",
		ActualType:   "string",
		IssueType:    jscan.TypeMismatch,
	}}, got)
}

func TestValidate_RowTagging(t *testing.T) {
	tpl := g.Object().Field("a", g.Number()).Template()
	got := jscan.Validate(tpl, parse(t, `[{"a":1},{"a":"x"}]`), jscan.TypesOnly)
	require.Len(t, got, 1)
	assert.Equal(t, "row 2: a", got[0].Field)
	assert.Equal(t, 2, got[0].Row)
}

func TestValidate_ExactMatchIsClean(t *testing.T) {
	tpl := jscan.SampleTemplate()
	got := jscan.Validate(tpl, jscan.SampleData(), jscan.All)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidate_AllIsConcatenation(t *testing.T) {
	tpl := g.Object().
		Field("name", g.String()).
		Field("age", g.Number()).
		Field("address", g.Object().
			Field("city", g.String()).
			Field("zip", g.String())).
		Field("tags", g.Array(g.String())).
		Template()

	for _, text := range []string{
		`{"name":1,"address":{"city":2,"extra":true},"tags":["a",3],"more":null}`,
		`[{"name":"x"},{"age":"1","address":[],"tags":{}},{"zz":1}]`,
		`"scalar"`,
		`null`,
	} {
		data := parse(t, text)
		want := jscan.Issues{}
		want = append(want, jscan.Validate(tpl, data, jscan.MissingOnly)...)
		want = append(want, jscan.Validate(tpl, data, jscan.AdditionalOnly)...)
		want = append(want, jscan.Validate(tpl, data, jscan.TypesOnly)...)
		got := jscan.Validate(tpl, data, jscan.All)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: All differs from concatenation (-want +got):\n%s", text, diff)
		}
		// idempotent
		if diff := cmp.Diff(got, jscan.Validate(tpl, data, jscan.All)); diff != "" {
			t.Fatalf("%s: second run differs:\n%s", text, diff)
		}
	}
}

func TestValidate_OrderFollowsTemplateAndData(t *testing.T) {
	tpl := g.Object().
		Field("name", g.String()).
		Field("age", g.Number()).
		Field("address", g.Object().
			Field("street", g.String()).
			Field("city", g.String())).
		Field("active", g.Bool()).
		Template()

	data := parse(t, `{"zeta":1,"address":{"city":5,"apt":"2B"},"alpha":[1],"age":"40","active":null}`)
	got := jscan.Validate(tpl, data, jscan.All)

	lines := make([]string, len(got))
	for i, it := range got {
		lines[i] = string(it.IssueType) + " " + it.Field + " " + it.ExpectedType + "/" + it.ActualType
	}
	autogold.Expect([]string{
		"Missing Field name string/Missing",
		"Missing Field address.street string/Missing",
		"Additional Field zeta Not defined/number",
		"Additional Field address.apt Not defined/string",
		"Additional Field alpha Not defined/array",
		"Type Mismatch age number/string",
		"Type Mismatch address.city string/number",
		"Type Mismatch active boolean/object",
	}).Equal(t, lines)
}

func TestValidate_MissingRecursesIntoNonObject(t *testing.T) {
	tpl := g.Object().
		Field("address", g.Object().
			Field("street", g.String()).
			Field("city", g.String())).
		Template()

	got := jscan.Validate(tpl, parse(t, `{"address":"somewhere"}`), jscan.MissingOnly)
	assert.Equal(t, []string{"address.street", "address.city"}, got.Fields())

	got = jscan.Validate(tpl, parse(t, `{"address":null}`), jscan.MissingOnly)
	assert.Equal(t, []string{"address.street", "address.city"}, got.Fields())
}

func TestValidate_NonObjectRootCountsAsEmpty(t *testing.T) {
	tpl := g.Object().Field("a", g.String()).Template()
	for _, data := range []any{nil, "text", json.Number("3"), true} {
		got := jscan.Validate(tpl, data, jscan.All)
		assert.Equal(t, []string{"a"}, got.Fields())
		assert.Equal(t, jscan.MissingField, got[0].IssueType)
	}
}

func TestValidate_AdditionalNeverEntersArrays(t *testing.T) {
	tpl := g.MustParse(`{"skills":{"type":"array","items":{"type":"object","properties":{"name":{"type":"string"}}}}}`)
	got := jscan.Validate(tpl, parse(t, `{"skills":[{"name":"go","extra":1}]}`), jscan.AdditionalOnly)
	assert.Empty(t, got)
}

func TestValidate_AdditionalEntersEmptyObjects(t *testing.T) {
	tpl := g.Object().Field("meta", g.Type("object")).Template()
	got := jscan.Validate(tpl, parse(t, `{"meta":{"k":[1]}}`), jscan.AdditionalOnly)
	assert.Equal(t, jscan.Issues{{
		Field:        "meta.k",
		ExpectedType: "Not defined",
		ActualType:   "array",
		IssueType:    jscan.AdditionalField,
	}}, got)
}

func TestValidate_NullIsObject(t *testing.T) {
	tpl := g.Object().
		Field("s", g.String()).
		Field("o", g.Object().Field("x", g.String())).
		Template()

	got := jscan.Validate(tpl, parse(t, `{"s":null,"o":null,"extra":null}`), jscan.All)
	autogold.Expect([]string{"o.x", "extra", "s"}).Equal(t, got.Fields())
	assert.Equal(t, "object", got[1].ActualType)
	assert.Equal(t, "object", got[2].ActualType)
}

func TestValidate_ArrayItems(t *testing.T) {
	tpl := g.Object().
		Field("tags", g.Array(g.String())).
		Field("any", g.ArrayAny()).
		Field("people", g.Array(g.Object().Field("age", g.Number()))).
		Template()

	data := parse(t, `{"tags":["a",1,null,["x"]],"any":[1,"b",{}],"people":[{"age":1},"bob",{"age":"2"},[]]}`)
	got := jscan.Validate(tpl, data, jscan.TypesOnly)

	lines := make([]string, len(got))
	for i, it := range got {
		lines[i] = it.Field + " " + it.ExpectedType + "/" + it.ActualType
	}
	autogold.Expect([]string{
		"tags[2] string/number",
		"tags[3] string/object",
		"tags[4] string/array",
		"people[2] object/string",
		"people[3].age number/string",
		"people[4] object/array",
	}).Equal(t, lines)
}

func TestValidate_UnknownTypeNames(t *testing.T) {
	tpl := jscan.NewTemplate(
		jscan.Field{Name: "when", Type: jscan.PrimitiveType{Name: "date"}},
		jscan.Field{Name: "blank", Type: jscan.PrimitiveType{}},
	)
	got := jscan.Validate(tpl, parse(t, `{"when":"2024-01-01"}`), jscan.All)
	assert.Equal(t, jscan.Issues{
		{Field: "blank", ExpectedType: "unknown", ActualType: "Missing", IssueType: jscan.MissingField},
		{Field: "when", ExpectedType: "date", ActualType: "string", IssueType: jscan.TypeMismatch},
	}, got)
}

func TestValidate_RowsAreCheckMajor(t *testing.T) {
	tpl := g.Object().Field("a", g.Number()).Template()
	got := jscan.Validate(tpl, parse(t, `[{"b":1},{"a":"x"},{}]`), jscan.All)
	autogold.Expect([]string{
		"row 1: a", "row 3: a",
		"row 1: b",
		"row 2: a",
	}).Equal(t, got.Fields())
}

func TestValidate_EmptyArrayRoot(t *testing.T) {
	tpl := g.Object().Field("a", g.Number()).Template()
	got := jscan.Validate(tpl, []any{}, jscan.All)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidate_PlainMaps(t *testing.T) {
	tpl := g.Object().Field("a", g.Number()).Field("b", g.Array(g.Bool())).Template()
	data := map[string]any{
		"z": 1,
		"b": []bool{true, false},
		"a": 2.5,
		"c": map[string]int{"x": 1},
	}
	got := jscan.Validate(tpl, data, jscan.All)
	assert.Equal(t, []string{"c", "z"}, got.Fields())
	assert.Equal(t, "object", got[0].ActualType)
}

func TestValidate_DoesNotMutateInputs(t *testing.T) {
	tpl := jscan.SampleTemplate()
	data := parse(t, `{"name":1,"address":{"zipCode":1},"extra":true}`)
	before, err := jscan.MarshalData(data)
	require.NoError(t, err)
	tplBefore, err := tpl.MarshalJSON()
	require.NoError(t, err)

	_ = jscan.Validate(tpl, data, jscan.All)

	after, err := jscan.MarshalData(data)
	require.NoError(t, err)
	tplAfter, err := tpl.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, string(tplBefore), string(tplAfter))
}

func TestValidate_DepthCap(t *testing.T) {
	tpl := g.Object().
		Field("a", g.Object().
			Field("b", g.Object().
				Field("c", g.String()))).
		Template()
	data := parse(t, `{"a":{"b":{"c":1,"d":2}}}`)

	for _, mode := range []jscan.Mode{jscan.MissingOnly, jscan.AdditionalOnly, jscan.TypesOnly} {
		got := jscan.Validate(tpl, data, mode, jscan.ValidateOpt{MaxDepth: 1})
		require.Len(t, got, 1, mode.String())
		assert.Equal(t, jscan.DepthExceeded, got[0].IssueType)
		assert.Equal(t, "a.b", got[0].Field)
		assert.Equal(t, "object", got[0].ExpectedType)
	}

	got := jscan.Validate(tpl, data, jscan.TypesOnly, jscan.ValidateOpt{MaxDepth: -1})
	assert.Equal(t, []string{"a.b.c"}, got.Fields())
}

func TestValidate_DefaultDepthCapStopsDeepTemplates(t *testing.T) {
	const depth = jscan.DefaultMaxDepth + 10
	node := g.Object().Field("leaf", g.String())
	text := `{"leaf":1}`
	for i := 0; i < depth; i++ {
		node = g.Object().Field("n", node)
		text = `{"n":` + text + `}`
	}
	got := jscan.Validate(node.Template(), parse(t, text), jscan.TypesOnly)
	require.Len(t, got, 1)
	assert.Equal(t, jscan.DepthExceeded, got[0].IssueType)
}

func TestValidate_UnknownModeReportsNothing(t *testing.T) {
	tpl := g.Object().Field("a", g.Number()).Template()
	assert.Empty(t, jscan.Validate(tpl, parse(t, `{}`), jscan.Mode(42)))
}
