package fieldsets

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formrows/pkg/rows"
	"github.com/goliatone/go-formrows/pkg/subthemes"
)

// Registry stores field sets by name. Field sets hold no per-editor state, so
// one instance serves every editor built from it.
type Registry struct {
	mu   sync.RWMutex
	sets map[string]rows.FieldSet
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]rows.FieldSet)}
}

// Default registers the five metadata field sets. The theme set reads its
// subthemes from table.
func Default(table *subthemes.Table) *Registry {
	registry := NewRegistry()
	registry.MustRegister(NewConformsTo())
	registry.MustRegister(NewAlternateIdentifier())
	registry.MustRegister(NewCreator())
	registry.MustRegister(NewTemporalCoverage())
	registry.MustRegister(NewTheme(table))
	return registry
}

// Register adds a field set by its Name(). Duplicate names return an error.
func (r *Registry) Register(set rows.FieldSet) error {
	if set == nil {
		return fmt.Errorf("fieldsets: field set is required")
	}
	name := set.Name()
	if name == "" {
		return fmt.Errorf("fieldsets: field set name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[name]; exists {
		return fmt.Errorf("fieldsets: field set %q already registered", name)
	}
	r.sets[name] = set
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(set rows.FieldSet) {
	if err := r.Register(set); err != nil {
		panic(err)
	}
}

// Replace registers set, overriding any existing entry with the same name.
func (r *Registry) Replace(set rows.FieldSet) error {
	if set == nil || set.Name() == "" {
		return fmt.Errorf("fieldsets: named field set is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.Name()] = set
	return nil
}

// Get retrieves a field set by name.
func (r *Registry) Get(name string) (rows.FieldSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("fieldsets: field set %q not found", name)
	}
	return set, nil
}

// MustGet panics if the field set is missing.
func (r *Registry) MustGet(name string) rows.FieldSet {
	set, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return set
}

// List returns the registered names in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a field set is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sets[name]
	return ok
}
