package jscan

import "encoding/json"

// SampleTemplate returns a small person template with nested objects and an
// unchecked array.
func SampleTemplate() Template {
	return NewTemplate(
		Field{"name", String()},
		Field{"age", Number()},
		Field{"email", String()},
		Field{"isActive", Boolean()},
		Field{"address", ObjectOf(NewFields(
			Field{"street", String()},
			Field{"city", String()},
			Field{"zipCode", String()},
		))},
		Field{"hobbies", ArrayType{}},
		Field{"metadata", ObjectOf(NewFields(
			Field{"createdAt", String()},
			Field{"updatedAt", String()},
		))},
	)
}

// SampleData returns a record that satisfies SampleTemplate.
func SampleData() *Object {
	addr := NewObject()
	addr.Set("street", "123 Main St")
	addr.Set("city", "New York")
	addr.Set("zipCode", "10001")

	meta := NewObject()
	meta.Set("createdAt", "2024-01-01")
	meta.Set("updatedAt", "2024-01-15")

	o := NewObject()
	o.Set("name", "John Doe")
	o.Set("age", json.Number("30"))
	o.Set("email", "john@example.com")
	o.Set("isActive", true)
	o.Set("address", addr)
	o.Set("hobbies", []any{"reading", "coding", "gaming"})
	o.Set("metadata", meta)
	return o
}
