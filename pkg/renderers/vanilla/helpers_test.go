package vanilla_test

import "github.com/goliatone/go-formrows/pkg/model"

func placeTemplate() model.RowTemplate {
	return model.RowTemplate{
		Label: "Spatial coverage",
		Fields: []model.Field{
			{Name: "geonames_url", Type: model.FieldTypeString, Format: "geonames", Label: "Place"},
		},
	}
}
