package resource

import "github.com/stemsi/academy-backoffice/internal/model"

func Employees() *Schema {
	return &Schema{
		Name: model.ResourceEmployees,
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "email", Type: TypeEmail, Required: true, Unique: true},
			{Name: "phone", Type: TypeString},
			{Name: "designation", Type: TypeString},
			{Name: "department", Type: TypeString},
			{Name: "joiningDate", Type: TypeDate},
			{Name: "salary", Type: TypeNumber},
			{Name: "photo", Type: TypeURL},
			{Name: "location", Type: TypeRef, Ref: model.ResourceLocations},
		},
	}
}
