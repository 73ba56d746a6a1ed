package resource

import "github.com/stemsi/academy-backoffice/internal/model"

// Courses declares the course catalogue. code is the business key.
func Courses() *Schema {
	return &Schema{
		Name: model.ResourceCourses,
		Fields: []Field{
			{Name: "title", Type: TypeString, Required: true},
			{Name: "code", Type: TypeString, Required: true, Unique: true},
			{Name: "description", Type: TypeText},
			{Name: "durationWeeks", Type: TypeInteger},
			{Name: "fee", Type: TypeNumber},
			{Name: "vendor", Type: TypeRef, Ref: model.ResourceVendors},
			{Name: "active", Type: TypeBool, Default: true},
		},
	}
}
