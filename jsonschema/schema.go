// Package jsonschema converts templates to and from JSON Schema.
//
// Export produces a draft 2020-12 schema that accepts the records a template
// check finds no issues in, except that null, which the check reports as an
// object, is rejected. Import reads the structural subset of JSON Schema and
// OpenAPI v3 (type, properties, items and local $ref).
package jsonschema

import (
	"github.com/reoring/jscan"
)

// Draft is the $schema URI written by FromTemplate.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is the JSON Schema subset used for export.
type Schema struct {
	Schema string `json:"$schema,omitempty" yaml:"$schema,omitempty"`

	// Core
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`
}

// FromTemplate exports t. Every root field is required and undeclared root
// fields are rejected, as are undeclared fields of declared objects. Array
// items are only type-checked, so object items get neither required nor
// additionalProperties. Type names other than the JSON ones become a format
// with no type.
func FromTemplate(t jscan.Template) *Schema {
	s := object(t.Fields, true)
	s.Schema = Draft
	return s
}

func object(fs jscan.Fields, strict bool) *Schema {
	s := &Schema{Type: jscan.TypeObject}
	if fs.Len() > 0 {
		s.Properties = make(map[string]*Schema, fs.Len())
	}
	for _, f := range fs.Entries() {
		s.Properties[f.Name] = descriptor(f.Type, strict)
	}
	if strict {
		s.Required = fs.Names()
		s.AdditionalProperties = false
	}
	return s
}

func descriptor(d jscan.TypeDescriptor, strict bool) *Schema {
	switch dt := d.(type) {
	case jscan.ObjectType:
		return object(dt.Properties, strict)
	case jscan.ArrayType:
		s := &Schema{Type: jscan.TypeArray}
		if dt.Items != nil {
			s.Items = descriptor(dt.Items, false)
		}
		return s
	case jscan.PrimitiveType:
		switch dt.Name {
		case "":
			return &Schema{}
		case jscan.TypeString, jscan.TypeNumber, jscan.TypeBoolean:
			return &Schema{Type: dt.Name}
		}
		return &Schema{Format: dt.Name}
	}
	return &Schema{}
}
