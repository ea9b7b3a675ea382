package dsl

import (
	"github.com/reoring/jscan"
)

// Node yields a descriptor. Primitives, arrays and object builders are nodes.
type Node interface {
	Descriptor() jscan.TypeDescriptor
}

type node struct{ d jscan.TypeDescriptor }

func (n node) Descriptor() jscan.TypeDescriptor { return n.d }

// Of wraps an existing descriptor as a Node.
func Of(d jscan.TypeDescriptor) Node { return node{d: d} }

// String declares a string field.
func String() Node { return node{d: jscan.String()} }

// Number declares a number field.
func Number() Node { return node{d: jscan.Number()} }

// Bool declares a boolean field.
func Bool() Node { return node{d: jscan.Boolean()} }

// Type declares a field by type name, as the template editor does: "object"
// gives an empty object, "array" an array of strings, anything else a
// primitive with that name.
func Type(name string) Node { return node{d: jscan.DescriptorFor(name)} }

// Array declares an array whose elements must match items. A nil items
// declares an array of strings.
func Array(items Node) Node {
	if items == nil {
		return node{d: jscan.ArrayOf(nil)}
	}
	return node{d: jscan.ArrayOf(items.Descriptor())}
}

// ArrayAny declares an array whose elements are not checked.
func ArrayAny() Node { return node{d: jscan.ArrayType{}} }
