package jscan

import (
	"encoding/json"
	"reflect"
	"sort"
)

// TypeOf returns the runtime type tag of a data value: "array" for arrays,
// otherwise "string", "number", "boolean" or "object". Null reports "object".
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return TypeObject
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return TypeNumber
	case []any:
		return TypeArray
	case *Object, Object, map[string]any:
		return TypeObject
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Slice, reflect.Array:
		return TypeArray
	default:
		return TypeObject
	}
}

// reflectObject views maps with string keys that are not map[string]any.
func reflectObject(v any) (objectView, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(mapView, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// reflectArray views slices and arrays that are not []any.
func reflectArray(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// sortedKeys returns map keys in ascending order for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
