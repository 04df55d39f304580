package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Record maps field names to values.
type Record map[string]any

// LocalizedText stores one string per language code.
type LocalizedText map[string]string

// Parse decodes a serialized editor value. Empty input, invalid JSON, or a
// non-array payload all produce an empty list; entries that are not objects are
// dropped.
func Parse(raw string) []Record {
	records, err := ParseStrict(raw)
	if err != nil {
		return []Record{}
	}
	return records
}

// ParseStrict mirrors Parse but reports why decoding failed.
func ParseStrict(raw string) ([]Record, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []Record{}, errors.New("record: empty payload")
	}

	var decoded []any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return []Record{}, fmt.Errorf("record: decode payload: %w", err)
	}

	out := make([]Record, 0, len(decoded))
	for _, entry := range decoded {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Record(obj))
	}
	return out, nil
}

// LoadJSONOrList accepts the JSON array form and falls back to the legacy
// comma separated notation, where each token becomes an identifier record.
func LoadJSONOrList(raw string) []Record {
	if records, err := ParseStrict(raw); err == nil {
		return records
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return []Record{}
	}

	out := make([]Record, 0, 2)
	for _, token := range strings.Split(trimmed, ",") {
		value := strings.TrimSpace(token)
		if value == "" {
			continue
		}
		out = append(out, Record{"identifier": value})
	}
	return out
}

// Serialize encodes records as a JSON array. A nil slice encodes as "[]".
func Serialize(records []Record) string {
	if records == nil {
		records = []Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return "[]"
	}
	return string(payload)
}

// String returns the scalar value stored under key. Numbers and booleans are
// formatted with fmt.Sprint, so a stored 5 reads as "5"; Merge restores the
// stored type when the text comes back unchanged. Maps and slices yield an
// empty string.
func (r Record) String(key string) string {
	if r == nil {
		return ""
	}
	return toString(r[key])
}

// Localized returns the LocalizedText stored under key. A plain string is
// treated as a value without language so legacy payloads still render.
func (r Record) Localized(key string) LocalizedText {
	if r == nil {
		return nil
	}
	return toLocalized(r[key])
}

// Strings returns the list stored under key. A lone string becomes a single
// element list.
func (r Record) Strings(key string) []string {
	if r == nil {
		return nil
	}
	return toStrings(r[key])
}

// Nested returns the nested record stored under key, or nil.
func (r Record) Nested(key string) Record {
	if r == nil {
		return nil
	}
	return toRecord(r[key])
}

// Keys returns the record keys in lexical order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone deep copies the record, normalising decoded JSON shapes on the way.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = cloneValue(value)
	}
	return out
}

// Get returns the text for lang, or an empty string.
func (t LocalizedText) Get(lang string) string {
	if t == nil {
		return ""
	}
	return t[lang]
}

// Clone copies the localized text.
func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	out := make(LocalizedText, len(t))
	for lang, value := range t {
		out[lang] = value
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Record:
		return v.Clone()
	case map[string]any:
		if text, ok := asLocalized(v); ok {
			return text
		}
		return Record(v).Clone()
	case LocalizedText:
		return v.Clone()
	case map[string]string:
		return LocalizedText(v).Clone()
	case []string:
		return append([]string(nil), v...)
	case []any:
		if list, ok := asStrings(v); ok {
			return list
		}
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64, bool, int, int64, json.Number:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func toLocalized(value any) LocalizedText {
	switch v := value.(type) {
	case LocalizedText:
		return v
	case map[string]string:
		return LocalizedText(v)
	case map[string]any:
		text, _ := asLocalized(v)
		return text
	case Record:
		text, _ := asLocalized(map[string]any(v))
		return text
	case string:
		if v == "" {
			return nil
		}
		return LocalizedText{"": v}
	default:
		return nil
	}
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func toRecord(value any) Record {
	switch v := value.(type) {
	case Record:
		return v
	case map[string]any:
		return Record(v)
	case LocalizedText:
		// nested records holding only strings are normalised to LocalizedText by Clone
		out := make(Record, len(v))
		for key, text := range v {
			out[key] = text
		}
		return out
	default:
		return nil
	}
}

// asLocalized reports whether every value of m is a string.
func asLocalized(m map[string]any) (LocalizedText, bool) {
	out := make(LocalizedText, len(m))
	for key, value := range m {
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		out[key] = s
	}
	return out, true
}

func asStrings(list []any) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
