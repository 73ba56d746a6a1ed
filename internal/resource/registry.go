package resource

import (
	"fmt"

	"github.com/stemsi/academy-backoffice/internal/model"
)

// Registry is the constructed table of resources the router serves.
type Registry struct {
	schemas []*Schema
	byName  map[model.Resource]*Schema
}

// NewRegistry checks the schemas for consistency and indexes them.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{byName: make(map[model.Resource]*Schema, len(schemas))}

	for _, s := range schemas {
		if !s.Name.Valid() {
			return nil, fmt.Errorf("schema %q: not a known resource", s.Name)
		}
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("schema %q registered twice", s.Name)
		}
		for _, f := range s.Fields {
			if reservedKeys[f.Name] {
				return nil, fmt.Errorf("schema %q: field %q is reserved", s.Name, f.Name)
			}
			if f.Type == TypeEnum && len(f.Enum) == 0 {
				return nil, fmt.Errorf("schema %q: enum field %q has no values", s.Name, f.Name)
			}
		}
		if s.OwnerField != "" {
			if f, ok := s.Field(s.OwnerField); !ok || f.Type != TypeRef {
				return nil, fmt.Errorf("schema %q: owner field %q must be a ref", s.Name, s.OwnerField)
			}
		}
		r.schemas = append(r.schemas, s)
		r.byName[s.Name] = s
	}

	// Expansion targets must exist once every schema is known.
	for _, s := range r.schemas {
		for _, e := range s.Expand {
			f, ok := s.Field(e.Field)
			if !ok || f.Type != TypeRef {
				return nil, fmt.Errorf("schema %q: expand field %q is not a ref", s.Name, e.Field)
			}
			if _, ok := r.byName[e.Resource]; !ok {
				return nil, fmt.Errorf("schema %q: expand target %q not registered", s.Name, e.Resource)
			}
		}
	}

	return r, nil
}

// Get returns the schema for a resource.
func (r *Registry) Get(name model.Resource) (*Schema, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// All returns schemas in registration order.
func (r *Registry) All() []*Schema {
	return r.schemas
}

// UniqueFields maps each resource to its unique field names.
func (r *Registry) UniqueFields() map[model.Resource][]string {
	out := make(map[model.Resource][]string, len(r.schemas))
	for _, s := range r.schemas {
		if u := s.UniqueFields(); len(u) > 0 {
			out[s.Name] = u
		}
	}
	return out
}

// Default builds the registry of all back-office resources.
func Default() *Registry {
	r, err := NewRegistry(
		Students(),
		Courses(),
		Batches(),
		Certifications(),
		Employees(),
		Vendors(),
		Locations(),
	)
	if err != nil {
		panic(err)
	}
	return r
}
