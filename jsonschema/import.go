package jsonschema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/reoring/jscan"
)

// Diag lists conversion warnings, one per construct Import had to
// approximate.
type Diag []string

func (d *Diag) warnf(format string, args ...any) { *d = append(*d, fmt.Sprintf(format, args...)) }

// Import builds a template from a decoded schema document, as returned by
// jscan.ParseData (property order is kept) or a plain map. It accepts a bare
// schema, an {"openAPIV3Schema": ...} wrapper or a Kubernetes CRD. The root
// must describe an object.
//
// "required" has no counterpart since every template field is required, and
// integer becomes number. Nullable unions keep their non-null type.
func Import(doc any) (jscan.Template, Diag, error) {
	var d Diag
	root, ok := node(doc)
	if !ok {
		return jscan.Template{}, d, errors.Wrap(jscan.ErrInvalidTemplate, "schema is not an object")
	}
	if oas, ok := node(root.get("openAPIV3Schema")); ok {
		root = oas
	} else if oas, ok := unwrapCRD(root); ok {
		root = oas
	}

	im := importer{defs: map[string]view{}, diag: &d, active: map[string]bool{}}
	for _, key := range []string{"$defs", "definitions"} {
		if defs, ok := node(root.get(key)); ok {
			for _, name := range defs.keys() {
				if def, ok := node(defs.get(name)); ok {
					im.defs["#/"+key+"/"+name] = def
				}
			}
		}
	}

	desc, err := im.descriptor(root, "")
	if err != nil {
		return jscan.Template{}, d, err
	}
	obj, ok := desc.(jscan.ObjectType)
	if !ok {
		return jscan.Template{}, d, errors.Wrapf(jscan.ErrInvalidTemplate, "schema root is %s, want object", desc.TypeName())
	}
	return jscan.Template{Fields: obj.Properties}, d, nil
}

// unwrapCRD finds spec.versions[].schema.openAPIV3Schema, preferring a served
// version, then the legacy spec.validation.openAPIV3Schema.
func unwrapCRD(root view) (view, bool) {
	spec, ok := node(root.get("spec"))
	if !ok {
		return view{}, false
	}
	var fallback *view
	if vers, ok := spec.get("versions").([]any); ok {
		for _, v := range vers {
			ver, ok := node(v)
			if !ok {
				continue
			}
			sch, ok := node(ver.get("schema"))
			if !ok {
				continue
			}
			oas, ok := node(sch.get("openAPIV3Schema"))
			if !ok {
				continue
			}
			if served, ok := ver.get("served").(bool); !ok || served {
				return oas, true
			}
			if fallback == nil {
				fallback = &oas
			}
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	if val, ok := node(spec.get("validation")); ok {
		return node(val.get("openAPIV3Schema"))
	}
	return view{}, false
}

type importer struct {
	defs   map[string]view
	diag   *Diag
	active map[string]bool
}

func where(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func (im *importer) descriptor(s view, path string) (jscan.TypeDescriptor, error) {
	if ref, ok := s.get("$ref").(string); ok {
		def, found := im.defs[ref]
		if !found {
			return nil, errors.Wrapf(jscan.ErrInvalidTemplate, "%s: unresolved $ref %q", where(path), ref)
		}
		if im.active[ref] {
			im.diag.warnf("%s: recursive $ref %q cut off as an object without properties", where(path), ref)
			return jscan.ObjectType{}, nil
		}
		im.active[ref] = true
		defer delete(im.active, ref)
		return im.descriptor(def, path)
	}
	if v, ok := s.get("x-kubernetes-int-or-string").(bool); ok && v {
		im.diag.warnf("%s: int-or-string left untyped", where(path))
		return jscan.PrimitiveType{}, nil
	}

	switch typ := im.typeOf(s, path); typ {
	case jscan.TypeObject:
		return im.object(s, path)
	case jscan.TypeArray:
		items, ok := node(s.get("items"))
		if !ok {
			return jscan.ArrayType{}, nil
		}
		d, err := im.descriptor(items, path+"[]")
		if err != nil {
			return nil, err
		}
		return jscan.ArrayType{Items: d}, nil
	case "":
		return jscan.PrimitiveType{}, nil
	default:
		return jscan.PrimitiveType{Name: typ}, nil
	}
}

// typeOf resolves the "type" keyword, inferring object or array from
// properties or items when it is absent.
func (im *importer) typeOf(s view, path string) string {
	var names []string
	switch t := s.get("type").(type) {
	case string:
		names = []string{t}
	case []any:
		for _, e := range t {
			if n, ok := e.(string); ok && n != "null" {
				names = append(names, n)
			}
		}
		if len(names) > 1 {
			im.diag.warnf("%s: type union %s narrowed to %s", where(path), strings.Join(names, "|"), names[0])
		}
	}
	if len(names) == 0 {
		switch {
		case s.has("properties"):
			return jscan.TypeObject
		case s.has("items"):
			return jscan.TypeArray
		}
		return ""
	}
	switch names[0] {
	case "integer":
		return jscan.TypeNumber
	case "null":
		return ""
	}
	return names[0]
}

func (im *importer) object(s view, path string) (jscan.TypeDescriptor, error) {
	var fields []jscan.Field
	props, _ := node(s.get("properties"))
	for _, name := range props.keys() {
		ps, ok := node(props.get(name))
		if !ok {
			return nil, errors.Wrapf(jscan.ErrInvalidTemplate, "%s: property schema is not an object", where(joinPath(path, name)))
		}
		d, err := im.descriptor(ps, joinPath(path, name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, jscan.Field{Name: name, Type: d})
	}
	if len(fields) > 0 {
		required := map[string]bool{}
		if req, ok := s.get("required").([]any); ok {
			for _, r := range req {
				if n, ok := r.(string); ok {
					required[n] = true
				}
			}
		}
		var optional []string
		for _, f := range fields {
			if !required[f.Name] {
				optional = append(optional, f.Name)
			}
		}
		if len(optional) > 0 {
			im.diag.warnf("%s: optional properties %s will be reported when missing", where(path), strings.Join(optional, ", "))
		}
	}
	return jscan.ObjectType{Properties: jscan.NewFields(fields...)}, nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// view reads a decoded JSON object, ordered or not.
type view struct{ v any }

func node(v any) (view, bool) {
	switch v.(type) {
	case *jscan.Object, map[string]any:
		return view{v}, true
	}
	return view{}, false
}

func (n view) get(k string) any {
	switch o := n.v.(type) {
	case *jscan.Object:
		v, _ := o.Get(k)
		return v
	case map[string]any:
		return o[k]
	}
	return nil
}

func (n view) has(k string) bool {
	switch o := n.v.(type) {
	case *jscan.Object:
		return o.Has(k)
	case map[string]any:
		_, ok := o[k]
		return ok
	}
	return false
}

func (n view) keys() []string {
	switch o := n.v.(type) {
	case *jscan.Object:
		return o.Keys()
	case map[string]any:
		ks := make([]string, 0, len(o))
		for k := range o {
			ks = append(ks, k)
		}
		sort.Strings(ks)
		return ks
	}
	return nil
}
