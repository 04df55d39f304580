package record

import "encoding/json"

// Merge overlays extracted values onto the stored row data. Keys present only in
// prior survive, which keeps fields that have no visible control. Localized
// texts merge per language: an empty extracted text removes that language and
// a text left without languages removes the key. Nested records merge
// recursively, and lists are replaced by the extracted list with duplicates
// removed. A scalar whose text form is unchanged keeps its stored type.
func Merge(prior, extracted Record) Record {
	out := prior.Clone()
	if out == nil {
		out = make(Record, len(extracted))
	}
	for key, value := range extracted {
		merged := mergeValue(out[key], value)
		if text, ok := merged.(LocalizedText); ok && len(text) == 0 {
			delete(out, key)
			continue
		}
		out[key] = merged
	}
	return out
}

func mergeValue(prior, next any) any {
	switch n := next.(type) {
	case LocalizedText:
		merged := LocalizedText{}
		if existing, ok := prior.(LocalizedText); ok {
			merged = existing.Clone()
		}
		for lang, value := range n {
			if value == "" {
				delete(merged, lang)
				continue
			}
			merged[lang] = value
		}
		return merged
	case Record:
		return Merge(toRecord(prior), n)
	case []string:
		return Dedupe(n)
	case string:
		switch prior.(type) {
		case float64, bool, int, int64, json.Number:
			if n != "" && toString(prior) == n {
				return prior
			}
		}
		return n
	default:
		return next
	}
}

// Dedupe removes repeated entries while keeping first-seen order.
func Dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
