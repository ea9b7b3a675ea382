// Package dsl provides a fluent builder for jscan templates.
//
// Overview
//   - Object(): declare an object with Field(name, node) in declaration order,
//     then call Template() for a root template or pass the builder itself as a
//     nested node.
//   - Primitives/Array: String()/Number()/Bool()/Type(name), Array(items) and
//     ArrayAny() for arrays whose elements are not checked.
//   - MustParse(doc): load a template document and panic on error, for tests
//     and package-level fixtures.
//
// Example (quickstart)
//
//	t := dsl.Object().
//	    Field("name", dsl.String()).
//	    Field("address", dsl.Object().
//	        Field("city", dsl.String())).
//	    Field("skills", dsl.Array(dsl.Object().
//	        Field("name", dsl.String()).
//	        Field("level", dsl.Number()))).
//	    Template()
//
//	issues := jscan.CheckText(ctx, t, input, jscan.All)
package dsl
