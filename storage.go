package archecs

import (
	"fmt"
	"math/bits"
)

// Container is the type-erased face of a DenseStore. Archetypes use it to
// manipulate stores whose element type they do not know.
type Container interface {
	// ComponentID returns the component type held by the store.
	ComponentID() ComponentID
	// Len returns the number of packed values.
	Len() int
	// Has reports whether slot holds a value.
	Has(slot uint32) bool
	// NewSibling returns an empty store of the same element type.
	NewSibling() Container
	// MoveOneInto appends the value at slot to dst, which must be a sibling,
	// and deletes it from the receiver.
	MoveOneInto(slot uint32, dst Container)
	// DeleteOne removes the value at slot, moving the last packed value into
	// its offset.
	DeleteOne(slot uint32)

	offset(slot uint32) (int, bool)
}

// DenseStore packs the values of one component type. A paged sparse array
// maps a slot (the entity index) to the value's packed offset.
//
// Removal is swap-pop, so packed order is insertion order only until the
// first removal.
type DenseStore[T any] struct {
	sparse    [][]int32 // pages, nil until a slot in range is used
	slots     []uint32  // packed offset -> slot
	values    []T
	pageShift uint
	pageMask  uint32
	id        ComponentID
}

var _ Container = (*DenseStore[struct{}])(nil)

// NewDenseStore creates an empty store. pageSize is rounded up to a power of
// two.
func NewDenseStore[T any](id ComponentID, pageSize int) *DenseStore[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	shift := uint(bits.Len(uint(pageSize - 1)))
	return &DenseStore[T]{
		id:        id,
		pageShift: shift,
		pageMask:  uint32(1)<<shift - 1,
	}
}

// ComponentID returns the component type held by the store.
func (s *DenseStore[T]) ComponentID() ComponentID { return s.id }

// Len returns the number of packed values.
func (s *DenseStore[T]) Len() int { return len(s.values) }

// Has reports whether slot holds a value.
func (s *DenseStore[T]) Has(slot uint32) bool {
	_, ok := s.offset(slot)
	return ok
}

func (s *DenseStore[T]) offset(slot uint32) (int, bool) {
	page := int(slot >> s.pageShift)
	if page >= len(s.sparse) || s.sparse[page] == nil {
		return 0, false
	}
	off := s.sparse[page][slot&s.pageMask]
	if off == absent {
		return 0, false
	}
	return int(off), true
}

// entry returns the sparse cell for slot, growing the page table as needed.
func (s *DenseStore[T]) entry(slot uint32) *int32 {
	page := int(slot >> s.pageShift)
	if page >= len(s.sparse) {
		s.sparse = append(s.sparse, make([][]int32, page+1-len(s.sparse))...)
	}
	if s.sparse[page] == nil {
		p := make([]int32, s.pageMask+1)
		for i := range p {
			p[i] = absent
		}
		s.sparse[page] = p
	}
	return &s.sparse[page][slot&s.pageMask]
}

// Emplace appends v for slot and returns a pointer to the stored value. The
// pointer is valid until the next removal from this store.
func (s *DenseStore[T]) Emplace(slot uint32, v T) *T {
	cell := s.entry(slot)
	if *cell != absent {
		panic(fmt.Sprintf("ecs: slot %d already holds a value in store %d", slot, s.id))
	}
	*cell = int32(len(s.values))
	s.values = append(s.values, v)
	s.slots = append(s.slots, slot)
	return &s.values[len(s.values)-1]
}

// Get returns a pointer to the value at slot, or nil.
func (s *DenseStore[T]) Get(slot uint32) *T {
	off, ok := s.offset(slot)
	if !ok {
		return nil
	}
	return &s.values[off]
}

// Values exposes the packed array. It is only valid until the next mutation.
func (s *DenseStore[T]) Values() []T { return s.values }

// Slots exposes the packed offset to slot mapping, parallel to Values.
func (s *DenseStore[T]) Slots() []uint32 { return s.slots }

// NewSibling returns an empty store with the same id and page layout.
func (s *DenseStore[T]) NewSibling() Container {
	return &DenseStore[T]{id: s.id, pageShift: s.pageShift, pageMask: s.pageMask}
}

// MoveOneInto appends the value at slot to dst and deletes it here. dst must
// be a *DenseStore[T].
func (s *DenseStore[T]) MoveOneInto(slot uint32, dst Container) {
	off, ok := s.offset(slot)
	if !ok {
		panic(fmt.Sprintf("ecs: slot %d missing from store %d", slot, s.id))
	}
	d, ok := dst.(*DenseStore[T])
	if !ok {
		panic(fmt.Sprintf("ecs: cannot move %T into %T", s, dst))
	}
	d.Emplace(slot, s.values[off])
	s.deleteAt(slot, off)
}

// DeleteOne swap-pops the value at slot.
func (s *DenseStore[T]) DeleteOne(slot uint32) {
	off, ok := s.offset(slot)
	if !ok {
		panic(fmt.Sprintf("ecs: slot %d missing from store %d", slot, s.id))
	}
	s.deleteAt(slot, off)
}

func (s *DenseStore[T]) deleteAt(slot uint32, off int) {
	last := len(s.values) - 1
	if off != last {
		moved := s.slots[last]
		s.values[off] = s.values[last]
		s.slots[off] = moved
		*s.entry(moved) = int32(off)
	}
	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	s.slots = s.slots[:last]
	*s.entry(slot) = absent
}
