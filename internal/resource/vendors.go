package resource

import "github.com/stemsi/academy-backoffice/internal/model"

func Vendors() *Schema {
	return &Schema{
		Name: model.ResourceVendors,
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "contactPerson", Type: TypeString},
			{Name: "email", Type: TypeEmail},
			{Name: "phone", Type: TypeString},
			{Name: "address", Type: TypeText},
			{Name: "website", Type: TypeURL},
			{Name: "services", Type: TypeStringList},
		},
	}
}
