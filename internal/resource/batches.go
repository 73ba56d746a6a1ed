package resource

import "github.com/stemsi/academy-backoffice/internal/model"

func Batches() *Schema {
	return &Schema{
		Name: model.ResourceBatches,
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "course", Type: TypeRef, Required: true, Ref: model.ResourceCourses},
			{Name: "location", Type: TypeRef, Ref: model.ResourceLocations},
			{Name: "trainer", Type: TypeRef, Ref: model.ResourceEmployees},
			{Name: "startDate", Type: TypeDate, Required: true},
			{Name: "endDate", Type: TypeDate},
			{Name: "capacity", Type: TypeInteger},
			{Name: "schedule", Type: TypeString},
		},
		Expand: []Expand{
			{Field: "course", Resource: model.ResourceCourses, Project: []string{"title"}},
		},
	}
}
