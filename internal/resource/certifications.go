package resource

import "github.com/stemsi/academy-backoffice/internal/model"

// Certificate dispatch states.
const (
	DispatchPending    = "pending"
	DispatchDispatched = "dispatched"
	DispatchDelivered  = "delivered"
)

// Certifications tracks issued certificates and their physical dispatch.
func Certifications() *Schema {
	return &Schema{
		Name: model.ResourceCertifications,
		Fields: []Field{
			{Name: "student", Type: TypeRef, Required: true, Ref: model.ResourceStudents},
			{Name: "course", Type: TypeRef, Required: true, Ref: model.ResourceCourses},
			{Name: "certificateNumber", Type: TypeString, Required: true, Unique: true},
			{Name: "issueDate", Type: TypeDate},
			{
				Name:    "dispatchStatus",
				Type:    TypeEnum,
				Enum:    []string{DispatchPending, DispatchDispatched, DispatchDelivered},
				Default: DispatchPending,
			},
			{Name: "dispatchDate", Type: TypeDate},
			{Name: "courier", Type: TypeString},
			{Name: "trackingNumber", Type: TypeString},
		},
		Expand: []Expand{
			{Field: "student", Resource: model.ResourceStudents, Project: []string{"name", "email"}},
			{Field: "course", Resource: model.ResourceCourses, Project: []string{"title"}},
		},
	}
}
