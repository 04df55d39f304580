package fieldsets

import (
	"strings"

	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/rows"
)

const (
	AlternateIdentifierKey = "alternate_identifier"

	agentKey    = "agent"
	agentPrefix = "agent_"
)

// AlternateIdentifier edits alternate identifiers and the agent that issued
// them. Inputs named agent_* are stored in the nested agent record.
type AlternateIdentifier struct {
	rows.Base
}

// NewAlternateIdentifier returns the alternate identifier field set.
func NewAlternateIdentifier() *AlternateIdentifier {
	return &AlternateIdentifier{Base: rows.NewBase(rows.Config{
		Key:        AlternateIdentifierKey,
		Prefix:     "alternate_identifier_",
		Localized:  []string{"agent_name"},
		Identifier: agentKey,
	}, model.RowTemplate{
		Label: "Alternate identifier",
		Fields: []model.Field{
			{Name: "identifier", Type: model.FieldTypeString, Label: "Identifier"},
			{Name: "agent_name", Type: model.FieldTypeString, Label: "Agent name"},
			{Name: "agent_identifier", Type: model.FieldTypeString, Label: "Agent identifier"},
		},
	})}
}

func (a *AlternateIdentifier) Load(raw string) []record.Record {
	return record.LoadJSONOrList(raw)
}

// PopulateRow reads agent_* controls from the nested agent record.
func (a *AlternateIdentifier) PopulateRow(row *rows.Row, rec record.Record, lang string) {
	agent := rec.Nested(agentKey)
	for _, ctl := range row.Controls {
		field := a.Cfg.FieldName(ctl.Name)
		if strings.HasPrefix(field, agentPrefix) {
			rows.PopulateControl(ctl, agent, field, lang)
			continue
		}
		rows.PopulateControl(ctl, rec, field, lang)
	}
}

// ExtractField routes agent_* values into the nested agent record.
func (a *AlternateIdentifier) ExtractField(acc record.Record, field string, ctl *rows.Control, lang string) {
	if !strings.HasPrefix(field, agentPrefix) {
		rows.ExtractValue(acc, field, ctl, lang)
		return
	}
	agent := acc.Nested(agentKey)
	if agent == nil {
		agent = record.Record{}
		acc[agentKey] = agent
	}
	rows.ExtractValue(agent, field, ctl, lang)
}
