package keymap

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
)

// Registry manages the active binding set and provides chord lookup.
//
// Lookups read an immutable table through an atomic pointer and never
// block. Writers serialize on a mutex, build a new table beside the live
// one and publish it with a single store, so a reader sees either the
// whole old set or the whole new set.
type Registry struct {
	// mu serializes writers; readers never take it.
	mu sync.Mutex

	current atomic.Pointer[table]
}

// table is an immutable snapshot of the binding set.
type table struct {
	// bindings holds bindings in registration order.
	bindings []Binding

	// index maps each chord to its position in bindings.
	index map[key.Chord]int

	// generation counts successful publishes.
	generation uint64
}

var emptyTable = &table{index: map[key.Chord]int{}}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.current.Store(emptyTable)
	return r
}

func (r *Registry) load() *table {
	if t := r.current.Load(); t != nil {
		return t
	}
	return emptyTable
}

// Register binds chord to act.
// Returns a *ConflictError if the chord is already bound; the registry is
// unchanged on any error.
func (r *Registry) Register(chord key.Chord, act action.Action, description string) error {
	return r.RegisterBulk([]Binding{NewBinding(chord, act).WithDescription(description)})
}

// Add registers a fully configured binding.
func (r *Registry) Add(b Binding) error {
	return r.RegisterBulk([]Binding{b})
}

// RegisterBulk registers a batch of bindings atomically.
// If any binding conflicts with the live set or with another entry in the
// batch, nothing is registered.
func (r *Registry) RegisterBulk(batch []Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.load()
	next, err := buildTable(cur, batch)
	if err != nil {
		return err
	}
	next.generation = cur.generation + 1
	r.current.Store(next)
	return nil
}

// Reload replaces the whole binding set.
// The new set is checked for internal conflicts first; on failure the
// previous set stays active.
func (r *Registry) Reload(bindings []Binding) error {
	next, err := buildTable(emptyTable, bindings)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next.generation = r.load().generation + 1
	r.current.Store(next)
	return nil
}

// Resolve returns the action bound to chord.
func (r *Registry) Resolve(chord key.Chord) (action.Action, bool) {
	b, ok := r.Lookup(chord)
	if !ok {
		return action.Action{}, false
	}
	return b.Action, true
}

// Lookup returns the full binding for chord.
func (r *Registry) Lookup(chord key.Chord) (Binding, bool) {
	t := r.load()
	i, ok := t.index[chord]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// Bindings returns the active bindings in registration order.
// The returned slice is a copy.
func (r *Registry) Bindings() []Binding {
	t := r.load()
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Len returns the number of active bindings.
func (r *Registry) Len() int {
	return len(r.load().bindings)
}

// Generation returns a counter that increases with every successful
// change to the binding set.
func (r *Registry) Generation() uint64 {
	return r.load().generation
}

// buildTable returns a new table holding base plus batch.
// It makes a single pass over batch and never touches base, so the caller
// can publish the result or drop it.
func buildTable(base *table, batch []Binding) (*table, error) {
	next := &table{
		bindings: make([]Binding, 0, len(base.bindings)+len(batch)),
		index:    make(map[key.Chord]int, len(base.bindings)+len(batch)),
	}
	next.bindings = append(next.bindings, base.bindings...)
	for k, v := range base.index {
		next.index[k] = v
	}

	baseLen := len(base.bindings)
	for _, b := range batch {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if i, exists := next.index[b.Chord]; exists {
			return nil, &ConflictError{
				Chord:    b.Chord,
				Existing: next.bindings[i],
				Incoming: b,
				InBatch:  i >= baseLen,
			}
		}
		next.index[b.Chord] = len(next.bindings)
		next.bindings = append(next.bindings, b)
	}

	return next, nil
}

// FindConflicts reports every conflict within bindings instead of
// stopping at the first one. Invalid bindings are skipped.
func FindConflicts(bindings []Binding) []*ConflictError {
	seen := make(map[key.Chord]Binding, len(bindings))
	var conflicts []*ConflictError
	for _, b := range bindings {
		if b.Validate() != nil {
			continue
		}
		if first, exists := seen[b.Chord]; exists {
			conflicts = append(conflicts, &ConflictError{
				Chord:    b.Chord,
				Existing: first,
				Incoming: b,
				InBatch:  true,
			})
			continue
		}
		seen[b.Chord] = b
	}
	return conflicts
}
