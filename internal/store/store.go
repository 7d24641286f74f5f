// Package store owns the ordered condition list and its mutation surface.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/fumikura/uprules/internal/rules"
	"github.com/fumikura/uprules/internal/types"
)

/*
 * Condition store.
 *
 * Mutations serialize on a mutex, build a fresh list from deep copies,
 * re-normalize, and publish through an atomic pointer swap. Readers
 * (Snapshot, Resolve) take the published slice without locking, so a
 * prefetch or render path resolving concurrently with an edit always
 * operates over one consistent snapshot; no torn reads.
 *
 * Published slices and the conditions in them are never written again after
 * publication. The central invariant every operation maintains: after any
 * mutation, priority strictly equals list index.
 */

// Direction selects the adjacent neighbor for Move.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// Store owns the ordered, prioritized condition list.
type Store struct {
	mu          sync.Mutex
	snapshot    atomic.Pointer[[]types.Condition]
	conditional atomic.Bool
}

// NewStore builds a store seeded with the given list, normalized.
func NewStore(initial []types.Condition) *Store {
	s := &Store{}
	list := rules.NormalizeList(initial)
	s.snapshot.Store(&list)
	return s
}

// SetConditionalMode toggles the guard that keeps at least one condition in
// the list while conditional upscaling is active.
func (s *Store) SetConditionalMode(on bool) {
	s.conditional.Store(on)
}

// ConditionalMode reports whether the removal guard is active.
func (s *Store) ConditionalMode() bool {
	return s.conditional.Load()
}

// Snapshot returns the current published list. Callers must treat it as
// read-only; every mutation publishes a fresh slice instead of editing this
// one.
func (s *Store) Snapshot() []types.Condition {
	return *s.snapshot.Load()
}

// Len returns the number of conditions in the current snapshot.
func (s *Store) Len() int {
	return len(s.Snapshot())
}

// Resolve resolves ctx over the current snapshot.
func (s *Store) Resolve(ctx *types.ImageContext, fallback types.Action) types.Action {
	return rules.Resolve(s.Snapshot(), ctx, fallback)
}

// ResolveMatch resolves ctx over the current snapshot with diagnostics.
func (s *Store) ResolveMatch(ctx *types.ImageContext, fallback types.Action) rules.Resolution {
	return rules.ResolveMatch(s.Snapshot(), ctx, fallback)
}

// Add appends a condition built from the template and returns its id.
// The template's id is regenerated if absent or colliding.
func (s *Store) Add(template types.Condition) types.ConditionID {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.working(), template.Clone())
	published := s.publish(list)
	return published[len(published)-1].ID
}

// AddFromPreset appends a fresh instance of the named preset and returns its
// id.
func (s *Store) AddFromPreset(key string) (types.ConditionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.working()
	c, err := rules.NewPreset(key, len(list))
	if err != nil {
		return "", err
	}
	published := s.publish(append(list, c))
	return published[len(published)-1].ID, nil
}

// Remove deletes the condition with the given id. Removing the sole remaining
// condition while conditional mode is active is rejected with
// ErrLastCondition and leaves the list unchanged.
func (s *Store) Remove(id types.ConditionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.working()
	idx := indexOf(list, id)
	if idx < 0 {
		return types.ErrConditionNotFound
	}
	if len(list) == 1 && s.conditional.Load() {
		return types.ErrLastCondition
	}
	s.publish(append(list[:idx], list[idx+1:]...))
	return nil
}

// Duplicate deep-copies the condition's match and action into a new appended
// condition with a fresh id and a suffixed name, and returns the new id.
func (s *Store) Duplicate(id types.ConditionID) (types.ConditionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.working()
	idx := indexOf(list, id)
	if idx < 0 {
		return "", types.ErrConditionNotFound
	}
	dup := list[idx].Clone()
	dup.ID = ""
	dup.Name += " (copy)"
	published := s.publish(append(list, dup))
	return published[len(published)-1].ID, nil
}

// Move swaps the condition with its adjacent neighbor in list order. Moving
// past either end is a no-op.
func (s *Store) Move(id types.ConditionID, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.working()
	idx := indexOf(list, id)
	if idx < 0 {
		return types.ErrConditionNotFound
	}

	var j int
	switch dir {
	case MoveUp:
		j = idx - 1
	case MoveDown:
		j = idx + 1
	default:
		return types.ErrInvalidDirection
	}
	if j < 0 || j >= len(list) {
		return nil
	}

	list[idx], list[j] = list[j], list[idx]
	s.publish(list)
	return nil
}

// Update applies the mutator to a deep copy of the condition, then
// re-normalizes and publishes. The mutator must not change the id; identity
// is preserved across the update and priority is owned by the store.
func (s *Store) Update(id types.ConditionID, mutate func(*types.Condition)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.working()
	idx := indexOf(list, id)
	if idx < 0 {
		return types.ErrConditionNotFound
	}

	mutate(&list[idx])
	list[idx].ID = id
	s.publish(list)
	return nil
}

// Replace swaps in a whole new list atomically (import, preset restore).
func (s *Store) Replace(list []types.Condition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(list)
}

// working returns a deep copy of the current list for mutation under mu.
func (s *Store) working() []types.Condition {
	cur := s.Snapshot()
	out := make([]types.Condition, len(cur))
	for i, c := range cur {
		out[i] = c.Clone()
	}
	return out
}

// publish normalizes list and swaps it in as the new snapshot. Caller holds
// mu. Returns the published list so callers can read assigned ids.
func (s *Store) publish(list []types.Condition) []types.Condition {
	normalized := rules.NormalizeList(list)
	s.snapshot.Store(&normalized)
	return normalized
}

func indexOf(list []types.Condition, id types.ConditionID) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}
