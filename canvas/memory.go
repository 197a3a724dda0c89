package canvas

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/agiangrant/boxlayout/layout"
)

// MemoryStore is an in-memory BoxStore. Box order is insertion order.
//
// Every mutation is recorded twice: subscribers are called synchronously once
// the store lock is released, and the update is queued for CollectUpdates so
// a render loop can batch its redraw.
type MemoryStore struct {
	mu       sync.RWMutex
	order    []string
	boxes    map[string]*layout.Box
	selected []string

	subMu  sync.Mutex
	subs   []subscriber
	nextID int

	pendingMu sync.Mutex
	pending   []Update
	hasDirty  atomic.Bool
}

type subscriber struct {
	id int
	fn func(Update)
}

// NewMemoryStore creates a store holding the given boxes.
func NewMemoryStore(boxes ...layout.Box) *MemoryStore {
	s := &MemoryStore{boxes: make(map[string]*layout.Box, len(boxes))}
	for _, b := range boxes {
		b := cloneBox(b)
		s.order = append(s.order, b.ID)
		s.boxes[b.ID] = &b
	}
	return s
}

func cloneBox(b layout.Box) layout.Box {
	b.Children = slices.Clone(b.Children)
	b.Layout = layout.CloneConfig(b.Layout)
	if b.LayoutChildProps != nil {
		b.LayoutChildProps = b.LayoutChildProps.Clone()
	}
	return b
}

// Box returns a copy of the box with the given id.
func (s *MemoryStore) Box(id string) (layout.Box, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boxes[id]
	if !ok {
		return layout.Box{}, false
	}
	return cloneBox(*b), true
}

// Boxes returns copies of every box in insertion order.
func (s *MemoryStore) Boxes() []layout.Box {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]layout.Box, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneBox(*s.boxes[id]))
	}
	return out
}

// UpdateBox applies patch to the box with the given id.
func (s *MemoryStore) UpdateBox(id string, patch BoxPatch) error {
	s.mu.Lock()
	b, ok := s.boxes[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", id, ErrBoxNotFound)
	}
	kind := patch.apply(b)
	parent := b.ParentID
	s.mu.Unlock()

	s.notify(Update{Type: kind, BoxID: id, ParentID: parent})
	return nil
}

// AddBox inserts a new box. The parent's Children list is not touched.
func (s *MemoryStore) AddBox(b layout.Box) error {
	s.mu.Lock()
	if _, exists := s.boxes[b.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("add %s: %w", b.ID, ErrDuplicateBox)
	}
	b = cloneBox(b)
	s.order = append(s.order, b.ID)
	s.boxes[b.ID] = &b
	s.mu.Unlock()

	s.notify(Update{Type: UpdateAdd, BoxID: b.ID, ParentID: b.ParentID})
	return nil
}

// RemoveBox deletes a box and detaches it from its parent's Children list.
// Descendants are left in place.
func (s *MemoryStore) RemoveBox(id string) error {
	s.mu.Lock()
	b, ok := s.boxes[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("remove %s: %w", id, ErrBoxNotFound)
	}
	parentID := b.ParentID
	delete(s.boxes, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	s.selected = slices.DeleteFunc(s.selected, func(v string) bool { return v == id })
	if parent, ok := s.boxes[parentID]; ok {
		parent.Children = slices.DeleteFunc(parent.Children, func(v string) bool { return v == id })
	}
	s.mu.Unlock()

	s.notify(Update{Type: UpdateRemove, BoxID: id, ParentID: parentID})
	return nil
}

// SelectBox selects id. With multi set the box is added to the current
// selection, otherwise it replaces it.
func (s *MemoryStore) SelectBox(id string, multi bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !multi {
		s.selected = s.selected[:0]
	}
	if !slices.Contains(s.selected, id) {
		s.selected = append(s.selected, id)
	}
}

// Selection returns the selected box ids in selection order.
func (s *MemoryStore) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.selected)
}

// Subscribe registers fn for every subsequent update. Calling the returned
// function removes the subscription.
func (s *MemoryStore) Subscribe(fn func(Update)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *MemoryStore) notify(u Update) {
	s.hasDirty.Store(true)
	s.pendingMu.Lock()
	s.pending = append(s.pending, u)
	s.pendingMu.Unlock()

	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()
	for _, sub := range subs {
		sub.fn(u)
	}
}

// CollectUpdates drains all queued updates.
func (s *MemoryStore) CollectUpdates() []Update {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()

	s.hasDirty.Store(false)
	if len(s.pending) == 0 {
		return nil
	}
	updates := s.pending
	s.pending = make([]Update, 0, cap(updates))
	return updates
}

// HasPendingUpdates reports whether anything changed since the last
// CollectUpdates.
func (s *MemoryStore) HasPendingUpdates() bool {
	return s.hasDirty.Load()
}
