// Package record models the structured sub-records stored by repeatable-row
// editors. A single hidden form input carries the full list of records as a
// JSON array; this package parses, merges, and serialises that payload.
//
// Values inside a Record are one of: a plain string, a LocalizedText keyed by
// language code, a []string for repeatable sub-fields, or a nested Record.
// JSON decoding produces generic shapes (map[string]any, []any); the accessors
// normalise both forms so callers never type-switch on decoded payloads.
package record
