package resource

import "github.com/stemsi/academy-backoffice/internal/model"

// Student enrolment statuses.
const (
	StudentEnquiry   = "enquiry"
	StudentEnrolled  = "enrolled"
	StudentCompleted = "completed"
	StudentDropped   = "dropped"
)

// Students declares the student record. bookedBy points at the identity
// that registered the student.
func Students() *Schema {
	return &Schema{
		Name: model.ResourceStudents,
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "email", Type: TypeEmail, Required: true, Unique: true},
			{Name: "phone", Type: TypeString},
			{Name: "course", Type: TypeRef, Ref: model.ResourceCourses},
			{Name: "batch", Type: TypeRef, Ref: model.ResourceBatches},
			{Name: "location", Type: TypeRef, Ref: model.ResourceLocations},
			{Name: "enrollmentDate", Type: TypeDate},
			{
				Name:    "status",
				Type:    TypeEnum,
				Enum:    []string{StudentEnquiry, StudentEnrolled, StudentCompleted, StudentDropped},
				Default: StudentEnquiry,
			},
			{Name: "feesPaid", Type: TypeNumber},
			{Name: "bookedBy", Type: TypeRef, Ref: RefUsers},
			{Name: "profileImage", Type: TypeURL},
			{Name: "notes", Type: TypeText},
		},
		Expand: []Expand{
			{Field: "course", Resource: model.ResourceCourses, Project: []string{"title", "code"}},
		},
		OwnerField: "bookedBy",
	}
}
