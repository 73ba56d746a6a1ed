package model

import "time"

// Resource names a permission-gated business entity.
type Resource string

const (
	ResourceStudents       Resource = "students"
	ResourceCourses        Resource = "courses"
	ResourceBatches        Resource = "batches"
	ResourceCertifications Resource = "certifications"
	ResourceEmployees      Resource = "employees"
	ResourceVendors        Resource = "vendors"
	ResourceLocations      Resource = "locations"
	ResourceReports        Resource = "reports"
)

// AllResources lists every resource a grant may name.
var AllResources = []Resource{
	ResourceStudents,
	ResourceCourses,
	ResourceBatches,
	ResourceCertifications,
	ResourceEmployees,
	ResourceVendors,
	ResourceLocations,
	ResourceReports,
}

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	for _, known := range AllResources {
		if r == known {
			return true
		}
	}
	return false
}

// Reserved document keys managed by the store.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Document is a schema-validated resource record. Domain fields are opaque
// to everything except the resource schemas.
type Document struct {
	ID        string
	Fields    map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Flatten renders the document as a single JSON object with the
// reserved keys alongside the domain fields.
func (d Document) Flatten() map[string]interface{} {
	out := make(map[string]interface{}, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[FieldID] = d.ID
	out[FieldCreatedAt] = d.CreatedAt
	out[FieldUpdatedAt] = d.UpdatedAt
	return out
}
