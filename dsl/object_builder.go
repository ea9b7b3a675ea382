package dsl

import (
	"context"

	"github.com/reoring/jscan"
)

type objectBuilder struct {
	fields jscan.Fields
}

// Object creates a new object builder with no fields.
func Object() *objectBuilder { return &objectBuilder{} }

// Field adds or replaces a field. A replaced field keeps its position.
func (b *objectBuilder) Field(name string, n Node) *objectBuilder {
	var d jscan.TypeDescriptor = jscan.PrimitiveType{}
	if n != nil {
		d = n.Descriptor()
	}
	b.fields = b.fields.With(name, d)
	return b
}

// Without drops a field declared earlier.
func (b *objectBuilder) Without(name string) *objectBuilder {
	b.fields = b.fields.Without(name)
	return b
}

// Descriptor returns the object descriptor built so far.
func (b *objectBuilder) Descriptor() jscan.TypeDescriptor {
	return jscan.ObjectType{Properties: b.fields}
}

// Template returns the fields built so far as a root template.
func (b *objectBuilder) Template() jscan.Template { return jscan.Template{Fields: b.fields} }

// MustParse decodes a JSON template document and panics on error. It is
// meant for fixtures.
func MustParse(doc string) jscan.Template {
	t, err := jscan.ParseTemplate(context.Background(), jscan.JSONString(doc))
	if err != nil {
		panic(err)
	}
	return t
}
