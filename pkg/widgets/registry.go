package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formrows/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput       = "input"
	WidgetTextarea    = "textarea"
	WidgetDate        = "date"
	WidgetURL         = "url"
	WidgetSelect      = "select"
	WidgetMultiSelect = "multiselect"
	WidgetList        = "list"
	WidgetPlace       = "place"
)

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget renderers for row fields based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. Fields no matcher claims resolve to WidgetInput.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. The
// latest registration wins among equal names during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints in
// Metadata["widget"] or UIHints["widget"] win over matchers.
func (r *Registry) Resolve(field model.Field) string {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit
	}
	if r == nil {
		return WidgetInput
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetInput
}

// Decorate implements model.Decorator, recording the resolved widget in
// UIHints["widget"] for every field without an explicit choice.
func (r *Registry) Decorate(tmpl *model.RowTemplate) error {
	if r == nil || tmpl == nil {
		return nil
	}
	for idx, field := range tmpl.Fields {
		if field.UIHints == nil {
			field.UIHints = make(map[string]string)
		}
		if field.UIHints["widget"] == "" {
			field.UIHints["widget"] = r.Resolve(field)
		}
		tmpl.Fields[idx] = field
	}
	return nil
}

func explicitWidget(field model.Field) string {
	if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
		return widget
	}
	return strings.TrimSpace(field.UIHints["widget"])
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetList, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeList
	})

	r.Register(WidgetMultiSelect, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeMultiChoice
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeChoice
	})

	r.Register(WidgetPlace, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeString && normalizedFormat(field) == "geonames"
	})

	r.Register(WidgetDate, 50, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		format := normalizedFormat(field)
		return format == "date" || format == "date-time"
	})

	r.Register(WidgetURL, 40, func(field model.Field) bool {
		return field.Type == model.FieldTypeString && normalizedFormat(field) == "url"
	})
}

func normalizedFormat(field model.Field) string {
	return strings.TrimSpace(strings.ToLower(field.Format))
}
