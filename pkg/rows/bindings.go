package rows

import "sync"

// Bindings records which editor containers already have their add control
// wired, so initialising the same page twice never attaches duplicate
// handlers. It is safe for concurrent use.
type Bindings struct {
	mu    sync.Mutex
	bound map[string]struct{}
}

// NewBindings returns an empty registry.
func NewBindings() *Bindings {
	return &Bindings{bound: make(map[string]struct{})}
}

// Bind marks id as bound. It returns false when id was already bound.
func (b *Bindings) Bind(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == nil {
		b.bound = make(map[string]struct{})
	}
	if _, ok := b.bound[id]; ok {
		return false
	}
	b.bound[id] = struct{}{}
	return true
}

// Bound reports whether id is bound.
func (b *Bindings) Bound(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.bound[id]
	return ok
}
