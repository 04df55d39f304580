package fieldsets

import (
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/rows"
)

const ConformsToKey = "conforms_to"

// ConformsTo edits the standards a dataset conforms to.
type ConformsTo struct {
	rows.Base
}

// NewConformsTo returns the conforms-to field set.
func NewConformsTo() *ConformsTo {
	return &ConformsTo{Base: rows.NewBase(rows.Config{
		Key:        ConformsToKey,
		Prefix:     "conforms_to_",
		Localized:  []string{"title", "description"},
		Lists:      []string{"referenceDocumentation"},
		Identifier: "referenceDocumentation",
	}, model.RowTemplate{
		Label: "Conforms to",
		Fields: []model.Field{
			{Name: "identifier", Type: model.FieldTypeString, Label: "Identifier"},
			{Name: "title", Type: model.FieldTypeString, Label: "Title"},
			{Name: "description", Type: model.FieldTypeString, Label: "Description", UIHints: map[string]string{"widget": "textarea"}},
			{
				Name:    "referenceDocumentation",
				Type:    model.FieldTypeList,
				Format:  "url",
				Label:   "Reference documentation",
				UIHints: map[string]string{"addLabel": "Add document"},
			},
		},
	})}
}

// Load accepts the JSON array and the legacy comma separated identifiers.
func (c *ConformsTo) Load(raw string) []record.Record {
	return record.LoadJSONOrList(raw)
}
