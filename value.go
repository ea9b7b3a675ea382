package jscan

import eng "github.com/reoring/jscan/internal/engine"

// Object is an ordered JSON object as produced by ParseData.
type Object = eng.Object

// NewObject returns an empty ordered object.
func NewObject() *Object { return eng.NewObject() }

// Runtime type tags reported in issues.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// objectView is the read-only object surface the engine walks. Keys are
// returned in a deterministic order.
type objectView interface {
	keys() []string
	get(key string) (any, bool)
}

type orderedView struct{ o *Object }

func (v orderedView) keys() []string { return v.o.Keys() }
func (v orderedView) get(k string) (any, bool) { return v.o.Get(k) }

type mapView map[string]any

func (v mapView) keys() []string { return sortedKeys(v) }

func (v mapView) get(k string) (any, bool) {
	val, ok := v[k]
	return val, ok
}

type emptyView struct{}

func (emptyView) keys() []string { return nil }
func (emptyView) get(string) (any, bool) { return nil, false }

// asObject returns a view of v when v is a non-null, non-array object.
func asObject(v any) (objectView, bool) {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil, false
		}
		return orderedView{t}, true
	case Object:
		return orderedView{&t}, true
	case map[string]any:
		if t == nil {
			return nil, false
		}
		return mapView(t), true
	}
	return reflectObject(v)
}

// objectOrEmpty substitutes an empty object for anything that is not one.
func objectOrEmpty(v any) objectView {
	if o, ok := asObject(v); ok {
		return o
	}
	return emptyView{}
}

// AsArray returns the elements of v when v is an array: a []any or any other
// Go slice or array, such as []map[string]any. Validate and the report grid
// use it to decide whether data is a list of records.
func AsArray(v any) ([]any, bool) { return asArray(v) }

func asArray(v any) ([]any, bool) {
	if a, ok := v.([]any); ok {
		return a, true
	}
	return reflectArray(v)
}

// LookupValue follows a dotted path of field and index segments through a
// data value. Item-descriptor segments never match data.
func LookupValue(v any, p FieldPath) (any, bool) {
	cur := v
	for _, s := range p.segs {
		switch s.Kind {
		case SegmentField:
			o, ok := asObject(cur)
			if !ok {
				return nil, false
			}
			if cur, ok = o.get(s.Name); !ok {
				return nil, false
			}
		case SegmentIndex:
			a, ok := asArray(cur)
			if !ok || s.Index < 1 || s.Index > len(a) {
				return nil, false
			}
			cur = a[s.Index-1]
		default:
			return nil, false
		}
	}
	return cur, true
}
