package jscan

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	eng "github.com/reoring/jscan/internal/engine"
)

// Template documents map field names to descriptor objects:
//
//	{
//	  "name":    {"type": "string"},
//	  "address": {"type": "object", "properties": {"city": {"type": "string"}}},
//	  "tags":    {"type": "array", "items": {"type": "string"}}
//	}
//
// A bare type name may stand in for a descriptor ("name": "string"). An
// object without "properties" has none; an array without "items" leaves its
// elements unchecked.

const (
	keyType       = "type"
	keyProperties = "properties"
	keyItems      = "items"
)

// ParseTemplate reads a template document from src.
func ParseTemplate(ctx context.Context, src Source, opts ...ParseOpt) (Template, error) {
	v, err := ParseData(ctx, src, opts...)
	if err != nil {
		return Template{}, errors.Wrap(err, "parse template")
	}
	return DecodeTemplate(v)
}

// DecodeTemplate converts a decoded document (see ParseData) into a Template.
// The root must be an object.
func DecodeTemplate(v any) (Template, error) {
	obj, ok := asObject(v)
	if !ok {
		return Template{}, errors.Wrapf(ErrInvalidTemplate, "root is %s, want object", TypeOf(v))
	}
	fs, err := decodeFields(obj, Root())
	if err != nil {
		return Template{}, err
	}
	return Template{Fields: fs}, nil
}

func decodeFields(obj objectView, at FieldPath) (Fields, error) {
	var fs Fields
	for _, k := range obj.keys() {
		raw, _ := obj.get(k)
		d, err := decodeDescriptor(raw, at.Field(k))
		if err != nil {
			return Fields{}, err
		}
		fs = fs.With(k, d)
	}
	return fs, nil
}

func decodeDescriptor(raw any, at FieldPath) (TypeDescriptor, error) {
	if name, ok := raw.(string); ok {
		return DescriptorFor(name), nil
	}
	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidTemplate, "%s: descriptor is %s, want object or type name", at, TypeOf(raw))
	}
	name := ""
	if t, ok := obj.get(keyType); ok && t != nil {
		s, isStr := t.(string)
		if !isStr {
			return nil, errors.Wrapf(ErrInvalidTemplate, "%s: %q is %s, want string", at, keyType, TypeOf(t))
		}
		name = s
	}
	switch name {
	case TypeObject:
		props, ok := obj.get(keyProperties)
		if !ok || props == nil {
			return ObjectType{}, nil
		}
		po, isObj := asObject(props)
		if !isObj {
			return nil, errors.Wrapf(ErrInvalidTemplate, "%s: %q is %s, want object", at, keyProperties, TypeOf(props))
		}
		fs, err := decodeFields(po, at)
		if err != nil {
			return nil, err
		}
		return ObjectType{Properties: fs}, nil
	case TypeArray:
		items, ok := obj.get(keyItems)
		if !ok || items == nil {
			return ArrayType{}, nil
		}
		d, err := decodeDescriptor(items, at.Items())
		if err != nil {
			return nil, err
		}
		return ArrayType{Items: d}, nil
	default:
		return PrimitiveType{Name: name}, nil
	}
}

// Document returns the template as an ordered document value, the inverse of
// DecodeTemplate.
func (t Template) Document() *Object { return encodeFields(t.Fields) }

func encodeFields(fs Fields) *Object {
	o := eng.NewObject()
	for _, e := range fs.list {
		o.Set(e.Name, encodeDescriptor(e.Type))
	}
	return o
}

func encodeDescriptor(d TypeDescriptor) *Object {
	o := eng.NewObject()
	switch dt := d.(type) {
	case ObjectType:
		o.Set(keyType, TypeObject)
		o.Set(keyProperties, encodeFields(dt.Properties))
	case ArrayType:
		o.Set(keyType, TypeArray)
		if dt.Items != nil {
			o.Set(keyItems, encodeDescriptor(dt.Items))
		}
	case PrimitiveType:
		if dt.Name != "" {
			o.Set(keyType, dt.Name)
		}
	}
	return o
}

// MarshalJSON encodes the template document with fields in declaration order.
func (t Template) MarshalJSON() ([]byte, error) { return eng.Marshal(t.Document()) }

// UnmarshalJSON decodes a template document, keeping field order.
func (t *Template) UnmarshalJSON(b []byte) error {
	v, err := ParseBytes(context.Background(), b)
	if err != nil {
		return errors.Wrap(err, "parse template")
	}
	nt, err := DecodeTemplate(v)
	if err != nil {
		return err
	}
	*t = nt
	return nil
}

// MarshalYAML encodes the template as an ordered YAML mapping.
func (t Template) MarshalYAML() (interface{}, error) { return DataYAMLNode(t.Document()), nil }

// DataYAMLNode converts a data value into a YAML node, keeping object member
// order.
func DataYAMLNode(v any) *yaml.Node {
	if o, ok := asObject(v); ok {
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range o.keys() {
			child, _ := o.get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				DataYAMLNode(child))
		}
		return n
	}
	if a, ok := asArray(v); ok {
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range a {
			n.Content = append(n.Content, DataYAMLNode(e))
		}
		return n
	}
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(string(t), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(t)}
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: errors.Wrap(err, "encode").Error()}
	}
	return n
}
