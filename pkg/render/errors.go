package render

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMapping holds the messages of one editor extracted from a server
// error payload.
type ErrorMapping struct {
	// Editor holds messages addressed to the editor as a whole.
	Editor []string
	// Rows holds messages addressed to a row position.
	Rows map[int][]string
	// Fields holds messages addressed to a field of a row position.
	Fields map[int]map[string][]string
}

// Flags reports the row positions carrying any message. The result feeds
// rows.WithErrorFlags.
func (m ErrorMapping) Flags() map[int]bool {
	flags := make(map[int]bool, len(m.Rows)+len(m.Fields))
	for idx := range m.Rows {
		flags[idx] = true
	}
	for idx := range m.Fields {
		flags[idx] = true
	}
	return flags
}

// RowMessages returns every message of a row position, row-level first.
func (m ErrorMapping) RowMessages(idx int) []string {
	messages := append([]string(nil), m.Rows[idx]...)
	for _, field := range sortedKeys(m.Fields[idx]) {
		messages = append(messages, m.Fields[idx][field]...)
	}
	return normalizeMessages(messages)
}

// Empty reports whether the mapping carries no message.
func (m ErrorMapping) Empty() bool {
	return len(m.Editor) == 0 && len(m.Rows) == 0 && len(m.Fields) == 0
}

// MergeMessages concatenates and normalises message slices, trimming
// whitespace and removing duplicates while preserving order.
func MergeMessages(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload picks the messages addressed to the editor stored under key.
// Paths may use dotted ("temporal_coverage.1.temporal_start"), bracketed
// ("temporal_coverage[1][temporal_start]") or JSON pointer
// ("/body/temporal_coverage/1") notation. Paths for other fields are ignored.
func MapErrorPayload(key string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	key = strings.TrimSpace(key)
	if key == "" || len(payload) == 0 {
		return mapping
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		segments := dropWrapperSegments(parsePathSegments(rawPath))
		if len(segments) == 0 || segments[0] != key {
			continue
		}
		rest := segments[1:]
		if len(rest) == 0 {
			mapping.Editor = append(mapping.Editor, normalized...)
			continue
		}
		idx, err := strconv.Atoi(rest[0])
		if err != nil || idx < 0 {
			mapping.Editor = append(mapping.Editor, normalized...)
			continue
		}
		if len(rest) == 1 {
			if mapping.Rows == nil {
				mapping.Rows = make(map[int][]string)
			}
			mapping.Rows[idx] = append(mapping.Rows[idx], normalized...)
			continue
		}
		field := strings.Join(rest[1:], ".")
		if mapping.Fields == nil {
			mapping.Fields = make(map[int]map[string][]string)
		}
		if mapping.Fields[idx] == nil {
			mapping.Fields[idx] = make(map[string][]string)
		}
		mapping.Fields[idx][field] = append(mapping.Fields[idx][field], normalized...)
	}

	mapping.Editor = normalizeMessages(mapping.Editor)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "attributes":
			segments = segments[1:]
			continue
		}
		break
	}
	return segments
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
