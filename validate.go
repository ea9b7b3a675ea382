package jscan

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

// Validate compares data against the template and returns the findings for
// mode. It never fails: problems are reported as issues, in a deterministic
// order, and neither argument is modified.
//
// When data is an array each element is checked as a separate record and
// issue fields carry a "row N: " prefix. Mode All runs the missing, additional
// and type checks in that order, each over every record before the next
// starts, so its result is the concatenation of the three single-check modes.
func Validate(t Template, data any, mode Mode, opts ...ValidateOpt) Issues {
	opt := lastOpt(opts)
	records := []any{data}
	rowed := false
	if arr, ok := asArray(data); ok {
		records, rowed = arr, true
	}
	out := Issues{}
	for _, check := range []Mode{MissingOnly, AdditionalOnly, TypesOnly} {
		if !mode.runs(check) {
			continue
		}
		for i, rec := range records {
			row := 0
			if rowed {
				row = i + 1
			}
			out = runCheck(check, t, rec, row, opt, out)
		}
	}
	logrus.Debugf("validate: mode=%s records=%d issues=%d", mode, len(records), len(out))
	return out
}

// runCheck appends the findings of one check over one record to out.
func runCheck(check Mode, t Template, rec any, row int, opt ValidateOpt, out Issues) Issues {
	w := walker{row: row, maxDepth: opt.maxDepth(), out: out}
	switch check {
	case MissingOnly:
		w.missing(t.Fields, rec, Root(), 0)
	case AdditionalOnly:
		w.additional(t.Fields, rec, Root(), 0)
	case TypesOnly:
		w.types(t.Fields, rec, Root(), 0)
	}
	return w.out
}

type walker struct {
	row      int
	maxDepth int
	out      Issues
}

func (w *walker) emit(at FieldPath, typ IssueType, expected, actual string) {
	w.out = append(w.out, Issue{
		Field:        at.WithRow(w.row),
		ExpectedType: expected,
		ActualType:   actual,
		IssueType:    typ,
		Row:          w.row,
	})
}

// descend reports whether a subtree at depth may be entered. The first refusal
// for a subtree is recorded as a DepthExceeded issue.
func (w *walker) descend(depth int, at FieldPath, d TypeDescriptor, v any) bool {
	if depth <= w.maxDepth {
		return true
	}
	w.out = append(w.out, Issue{
		Field:        at.WithRow(w.row),
		ExpectedType: typeName(d),
		ActualType:   TypeOf(v),
		IssueType:    DepthExceeded,
		Message:      "max depth " + strconv.Itoa(w.maxDepth) + " exceeded",
		Row:          w.row,
	})
	return false
}

// missing reports declared fields absent from data. Non-object data counts as
// an empty object.
func (w *walker) missing(fields Fields, data any, at FieldPath, depth int) {
	obj := objectOrEmpty(data)
	for _, e := range fields.list {
		p := at.Field(e.Name)
		v, ok := obj.get(e.Name)
		if !ok {
			w.emit(p, MissingField, typeName(e.Type), ActualMissing)
			continue
		}
		ot, isObj := e.Type.(ObjectType)
		if !isObj || ot.Properties.Len() == 0 {
			continue
		}
		if w.descend(depth+1, p, e.Type, v) {
			w.missing(ot.Properties, v, p, depth+1)
		}
	}
}

// additional reports data fields the template does not declare. It follows
// declared objects but never enters arrays.
func (w *walker) additional(fields Fields, data any, at FieldPath, depth int) {
	obj, ok := asObject(data)
	if !ok {
		return
	}
	for _, k := range obj.keys() {
		p := at.Field(k)
		v, _ := obj.get(k)
		d, declared := fields.Get(k)
		if !declared {
			w.emit(p, AdditionalField, ExpectedUndefined, TypeOf(v))
			continue
		}
		ot, isObj := d.(ObjectType)
		if !isObj {
			continue
		}
		if _, vIsObj := asObject(v); !vIsObj {
			continue
		}
		if w.descend(depth+1, p, d, v) {
			w.additional(ot.Properties, v, p, depth+1)
		}
	}
}

// types reports present fields whose runtime type differs from the declared
// one, following matching objects and checking array elements against the
// item descriptor.
func (w *walker) types(fields Fields, data any, at FieldPath, depth int) {
	obj := objectOrEmpty(data)
	for _, e := range fields.list {
		v, ok := obj.get(e.Name)
		if !ok {
			continue
		}
		w.typeOf(e.Type, v, at.Field(e.Name), depth)
	}
}

func (w *walker) typeOf(d TypeDescriptor, v any, p FieldPath, depth int) {
	expected, actual := typeName(d), TypeOf(v)
	if expected != actual {
		w.emit(p, TypeMismatch, expected, actual)
		return
	}
	switch dt := d.(type) {
	case ObjectType:
		if _, isObj := asObject(v); isObj && w.descend(depth+1, p, d, v) {
			w.types(dt.Properties, v, p, depth+1)
		}
	case ArrayType:
		if dt.Items == nil {
			return
		}
		elems, _ := asArray(v)
		if len(elems) == 0 || !w.descend(depth+1, p, d, v) {
			return
		}
		for i, el := range elems {
			w.item(dt.Items, el, p.Index(i+1), depth+1)
		}
	}
}

// item checks one array element. Object elements under an object item
// descriptor are checked field by field; anything else is compared by type
// name only.
func (w *walker) item(d TypeDescriptor, v any, p FieldPath, depth int) {
	if ot, isObj := d.(ObjectType); isObj {
		if _, vIsObj := asObject(v); vIsObj {
			if w.descend(depth+1, p, d, v) {
				w.types(ot.Properties, v, p, depth+1)
			}
			return
		}
	}
	if expected, actual := typeName(d), TypeOf(v); expected != actual {
		w.emit(p, TypeMismatch, expected, actual)
	}
}
