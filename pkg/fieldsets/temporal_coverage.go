package fieldsets

import (
	"strings"

	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/rows"
)

const TemporalCoverageKey = "temporal_coverage"

// TemporalCoverage edits start/end date ranges. Ranges with neither bound are
// dropped on extraction.
type TemporalCoverage struct {
	rows.Base
}

func NewTemporalCoverage() *TemporalCoverage {
	return &TemporalCoverage{Base: rows.NewBase(rows.Config{
		Key:    TemporalCoverageKey,
		Prefix: "temporal_coverage_",
	}, model.RowTemplate{
		Label: "Temporal coverage",
		Fields: []model.Field{
			{Name: "temporal_start", Type: model.FieldTypeString, Format: "date", Label: "Start"},
			{Name: "temporal_end", Type: model.FieldTypeString, Format: "date", Label: "End"},
		},
	})}
}

// FinalizeRecords drops rows where both bounds are blank.
func (t *TemporalCoverage) FinalizeRecords(records []record.Record) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if blank(rec.String("temporal_start")) && blank(rec.String("temporal_end")) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
