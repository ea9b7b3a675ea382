package jscan

// TypeDescriptor describes the expected type of one template field. The set of
// implementations is closed: PrimitiveType, ObjectType and ArrayType.
type TypeDescriptor interface {
	// TypeName is the name compared with runtime type tags: a primitive's
	// declared name, "object" or "array".
	TypeName() string
	isDescriptor()
}

// PrimitiveType declares a leaf field. Name is normally "string", "number" or
// "boolean"; other names are kept verbatim and never match data.
type PrimitiveType struct {
	Name string
}

func (p PrimitiveType) TypeName() string {
	if p.Name == "" {
		return UnknownType
	}
	return p.Name
}

func (PrimitiveType) isDescriptor() {}

// ObjectType declares a nested object with its own ordered properties.
type ObjectType struct {
	Properties Fields
}

func (ObjectType) TypeName() string { return TypeObject }
func (ObjectType) isDescriptor()    {}

// ArrayType declares a homogeneous array. A nil Items leaves elements
// unchecked.
type ArrayType struct {
	Items TypeDescriptor
}

func (ArrayType) TypeName() string { return TypeArray }
func (ArrayType) isDescriptor()    {}

// Descriptor constructors.
func String() TypeDescriptor  { return PrimitiveType{Name: TypeString} }
func Number() TypeDescriptor  { return PrimitiveType{Name: TypeNumber} }
func Boolean() TypeDescriptor { return PrimitiveType{Name: TypeBoolean} }

// ObjectOf returns an object descriptor with the given properties.
func ObjectOf(props Fields) TypeDescriptor { return ObjectType{Properties: props} }

// ArrayOf returns an array descriptor. A nil items defaults to string.
func ArrayOf(items TypeDescriptor) TypeDescriptor {
	if items == nil {
		items = String()
	}
	return ArrayType{Items: items}
}

// DescriptorFor maps a type name to a fresh descriptor: "object" gives an empty
// object, "array" an array of string, anything else a primitive.
func DescriptorFor(typeName string) TypeDescriptor {
	switch typeName {
	case TypeObject:
		return ObjectType{}
	case TypeArray:
		return ArrayOf(nil)
	default:
		return PrimitiveType{Name: typeName}
	}
}

// typeName tolerates nil descriptors.
func typeName(d TypeDescriptor) string {
	if d == nil {
		return UnknownType
	}
	return d.TypeName()
}

// Field is one named entry of Fields.
type Field struct {
	Name string
	Type TypeDescriptor
}

// Fields is an immutable ordered mapping of field name to descriptor. The zero
// value is empty. With and Without return new values and never modify the
// receiver.
type Fields struct {
	list []Field
}

// NewFields builds Fields from entries. A repeated name replaces the earlier
// descriptor and keeps its position.
func NewFields(entries ...Field) Fields {
	var f Fields
	for _, e := range entries {
		f = f.With(e.Name, e.Type)
	}
	return f
}

func (f Fields) Len() int { return len(f.list) }

// Names returns the field names in declaration order.
func (f Fields) Names() []string {
	out := make([]string, len(f.list))
	for i, e := range f.list {
		out[i] = e.Name
	}
	return out
}

// Entries returns a copy of the entries in declaration order.
func (f Fields) Entries() []Field { return append([]Field(nil), f.list...) }

func (f Fields) index(name string) int {
	for i, e := range f.list {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func (f Fields) Get(name string) (TypeDescriptor, bool) {
	if i := f.index(name); i >= 0 {
		return f.list[i].Type, true
	}
	return nil, false
}

func (f Fields) Has(name string) bool { return f.index(name) >= 0 }

// With returns a copy with name bound to d. Existing names keep their position.
func (f Fields) With(name string, d TypeDescriptor) Fields {
	list := make([]Field, len(f.list), len(f.list)+1)
	copy(list, f.list)
	if i := f.index(name); i >= 0 {
		list[i].Type = d
		return Fields{list: list}
	}
	return Fields{list: append(list, Field{Name: name, Type: d})}
}

// Without returns a copy with name removed.
func (f Fields) Without(name string) Fields {
	i := f.index(name)
	if i < 0 {
		return f
	}
	list := make([]Field, 0, len(f.list)-1)
	list = append(list, f.list[:i]...)
	return Fields{list: append(list, f.list[i+1:]...)}
}

// Template is the expected shape of a data record: an ordered mapping of root
// field names to descriptors. Templates are values; edits return new ones.
type Template struct {
	Fields Fields
}

// NewTemplate returns a template with the given root fields.
func NewTemplate(entries ...Field) Template { return Template{Fields: NewFields(entries...)} }

// Len returns the number of root fields.
func (t Template) Len() int { return t.Fields.Len() }
