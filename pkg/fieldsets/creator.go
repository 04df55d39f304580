package fieldsets

import (
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/rows"
)

const CreatorKey = "creator"

// Creator edits the dataset creators. Input names double as field names.
type Creator struct {
	rows.Base
}

func NewCreator() *Creator {
	return &Creator{Base: rows.NewBase(rows.Config{
		Key:       CreatorKey,
		Localized: []string{"creator_name"},
	}, model.RowTemplate{
		Label: "Creator",
		Fields: []model.Field{
			{Name: "creator_name", Type: model.FieldTypeString, Label: "Name"},
			{Name: "creator_identifier", Type: model.FieldTypeString, Label: "IPA/IVA"},
		},
	})}
}
