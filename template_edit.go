package jscan

import (
	"github.com/pkg/errors"
)

// Template editing. Paths address descriptors: field segments select object
// properties and the "[]" segment selects an array's item descriptor, so
// "skills[].level" is the level property of each skills item. Numbered index
// segments address data, not templates, and are rejected.
//
// Every edit returns a new Template; on error the receiver is returned
// unchanged.

type editOp func(parent TypeDescriptor, last Segment, at FieldPath) (TypeDescriptor, error)

func (t Template) edit(p FieldPath, op editOp) (Template, error) {
	if p.IsRoot() {
		return t, errors.Wrap(ErrInvalidPath, "empty path")
	}
	out, err := editIn(ObjectType{Properties: t.Fields}, p.segs, Root(), op)
	if err != nil {
		return t, err
	}
	return Template{Fields: out.(ObjectType).Properties}, nil
}

func editIn(d TypeDescriptor, segs []Segment, at FieldPath, op editOp) (TypeDescriptor, error) {
	seg := segs[0]
	if len(segs) == 1 {
		return op(d, seg, at)
	}
	switch seg.Kind {
	case SegmentField:
		obj, ok := d.(ObjectType)
		if !ok {
			return nil, errors.Wrapf(ErrNotContainer, "%q is %s", at.String(), typeName(d))
		}
		child, ok := obj.Properties.Get(seg.Name)
		if !ok {
			return nil, errors.Wrapf(ErrPathNotFound, "%q", at.Field(seg.Name).String())
		}
		nc, err := editIn(child, segs[1:], at.Field(seg.Name), op)
		if err != nil {
			return nil, err
		}
		return ObjectType{Properties: obj.Properties.With(seg.Name, nc)}, nil
	case SegmentItems:
		arr, ok := d.(ArrayType)
		if !ok {
			return nil, errors.Wrapf(ErrNotContainer, "%q is %s", at.String(), typeName(d))
		}
		if arr.Items == nil {
			return nil, errors.Wrapf(ErrPathNotFound, "%q has no item descriptor", at.String())
		}
		ni, err := editIn(arr.Items, segs[1:], at.Items(), op)
		if err != nil {
			return nil, err
		}
		return ArrayType{Items: ni}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidPath, "index segment %s in template path", seg)
	}
}

// Set binds the descriptor at p, adding the field when absent. The parent of p
// must exist and be an object (or an array for a trailing "[]").
func (t Template) Set(p FieldPath, d TypeDescriptor) (Template, error) {
	if d == nil {
		return t, errors.Wrapf(ErrInvalidTemplate, "nil descriptor for %q", p.String())
	}
	return t.edit(p, func(parent TypeDescriptor, last Segment, at FieldPath) (TypeDescriptor, error) {
		switch last.Kind {
		case SegmentField:
			obj, ok := parent.(ObjectType)
			if !ok {
				return nil, errors.Wrapf(ErrNotContainer, "%q is %s", at.String(), typeName(parent))
			}
			return ObjectType{Properties: obj.Properties.With(last.Name, d)}, nil
		case SegmentItems:
			if _, ok := parent.(ArrayType); !ok {
				return nil, errors.Wrapf(ErrNotContainer, "%q is %s", at.String(), typeName(parent))
			}
			return ArrayType{Items: d}, nil
		default:
			return nil, errors.Wrapf(ErrInvalidPath, "index segment %s in template path", last)
		}
	})
}

// SetType replaces the descriptor at p with a fresh one for typeName (see
// DescriptorFor). Nested properties of a replaced object are dropped.
func (t Template) SetType(p FieldPath, typeName string) (Template, error) {
	return t.Set(p, DescriptorFor(typeName))
}

// Remove deletes the field at p. Item descriptors cannot be removed.
func (t Template) Remove(p FieldPath) (Template, error) {
	return t.edit(p, func(parent TypeDescriptor, last Segment, at FieldPath) (TypeDescriptor, error) {
		if last.Kind != SegmentField {
			return nil, errors.Wrapf(ErrInvalidPath, "cannot remove %s", last)
		}
		obj, ok := parent.(ObjectType)
		if !ok {
			return nil, errors.Wrapf(ErrNotContainer, "%q is %s", at.String(), typeName(parent))
		}
		if !obj.Properties.Has(last.Name) {
			return nil, errors.Wrapf(ErrPathNotFound, "%q", at.Field(last.Name).String())
		}
		return ObjectType{Properties: obj.Properties.Without(last.Name)}, nil
	})
}

// Lookup returns the descriptor at p. Numbered index segments are treated like
// "[]" so data paths resolve to the descriptor that governs them. The root
// resolves to an object descriptor over the root fields.
func (t Template) Lookup(p FieldPath) (TypeDescriptor, bool) {
	var d TypeDescriptor = ObjectType{Properties: t.Fields}
	for _, s := range p.segs {
		switch s.Kind {
		case SegmentField:
			obj, ok := d.(ObjectType)
			if !ok {
				return nil, false
			}
			if d, ok = obj.Properties.Get(s.Name); !ok {
				return nil, false
			}
		default:
			arr, ok := d.(ArrayType)
			if !ok || arr.Items == nil {
				return nil, false
			}
			d = arr.Items
		}
	}
	return d, true
}

// ExpectedType returns the declared type name at p, or "" when p is not
// declared.
func (t Template) ExpectedType(p FieldPath) string {
	d, ok := t.Lookup(p)
	if !ok {
		return ""
	}
	return typeName(d)
}

// Leaves returns the paths of the typed non-object fields, in declaration
// order. Objects are expanded rather than listed, so an object without
// properties contributes nothing; fields without a type name are skipped.
func (t Template) Leaves() []FieldPath {
	var out []FieldPath
	var walk func(fs Fields, at FieldPath)
	walk = func(fs Fields, at FieldPath) {
		for _, e := range fs.list {
			p := at.Field(e.Name)
			switch d := e.Type.(type) {
			case ObjectType:
				walk(d.Properties, p)
			case PrimitiveType:
				if d.Name != "" {
					out = append(out, p)
				}
			case ArrayType:
				out = append(out, p)
			}
		}
	}
	walk(t.Fields, Root())
	return out
}
