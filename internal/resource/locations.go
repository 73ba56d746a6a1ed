package resource

import "github.com/stemsi/academy-backoffice/internal/model"

// Locations are training centres; name is unique.
func Locations() *Schema {
	return &Schema{
		Name: model.ResourceLocations,
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true, Unique: true},
			{Name: "address", Type: TypeText},
			{Name: "city", Type: TypeString, Required: true},
			{Name: "state", Type: TypeString},
			{Name: "pincode", Type: TypeString},
			{Name: "capacity", Type: TypeInteger},
		},
	}
}
