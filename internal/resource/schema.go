// Package resource declares the business resources served by the generic
// CRUD layer. Each Schema is data: the handlers never branch on a name.
package resource

import (
	"github.com/stemsi/academy-backoffice/internal/model"
)

// FieldType selects the validation rule applied to a payload value.
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeText       FieldType = "text"
	TypeEmail      FieldType = "email"
	TypeURL        FieldType = "url"
	TypeNumber     FieldType = "number"
	TypeInteger    FieldType = "integer"
	TypeBool       FieldType = "bool"
	TypeDate       FieldType = "date"
	TypeEnum       FieldType = "enum"
	TypeRef        FieldType = "ref"
	TypeStringList FieldType = "string_list"
)

// RefUsers marks a reference to the credential store rather than a resource.
const RefUsers model.Resource = "users"

// Field describes one document attribute.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Unique fields are enforced by the store (unique index / store lock).
	Unique  bool
	Enum    []string
	Ref     model.Resource
	Default interface{}
}

// Expand replaces a reference id with {id, Project...} of the referenced
// document on every read path.
type Expand struct {
	Field    string
	Resource model.Resource
	Project  []string
}

// Schema is the adapter consumed by the generic resource service.
type Schema struct {
	Name   model.Resource
	Fields []Field
	Expand []Expand
	// OwnerField, when set, is filled with the caller's id on create
	// if the payload leaves it empty.
	OwnerField string
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// UniqueFields lists the names of fields flagged Unique.
func (s *Schema) UniqueFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Unique {
			out = append(out, f.Name)
		}
	}
	return out
}
