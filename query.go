package archecs

import "iter"

// queryCache is the cursor shared by every query arity. It holds the
// archetypes matched at construction and walks each of them from its last
// row down to row 0.
//
// Walking backward is what makes destroying the visited entity safe: a
// swap-pop moves the last row, which has already been visited, into the
// current one. Adding or removing components of the visited entity is safe
// only when its destination archetype is not in the matched set or has
// already been walked; a move into a matched archetype that is still ahead
// of the cursor visits the entity again. Mutating any other entity of a
// matched archetype while iterating may skip or repeat entities. Archetypes
// created after construction are not visited.
type queryCache struct {
	world      *World
	archetypes []*Archetype
	cur        *Archetype
	next       int
	row        int
}

func newQueryCache(w *World, ids ...ComponentID) queryCache {
	return queryCache{world: w, archetypes: w.View(ids...)}
}

// step moves to the next row. entered is true when the cursor changed
// archetype, so typed queries can refresh their stores.
func (c *queryCache) step() (ok, entered bool) {
	if c.cur != nil {
		c.row--
		if n := len(c.cur.entities); c.row >= n {
			c.row = n - 1
		}
		if c.row >= 0 {
			return true, false
		}
	}
	for c.next < len(c.archetypes) {
		c.cur = c.archetypes[c.next]
		c.next++
		if n := len(c.cur.entities); n > 0 {
			c.row = n - 1
			return true, true
		}
	}
	c.cur = nil
	return false, false
}

// Reset rewinds the query. The matched archetypes are not rescanned; build a
// new query to pick up archetypes created since.
func (c *queryCache) Reset() {
	c.cur = nil
	c.next = 0
	c.row = 0
}

// Entity returns the entity at the cursor. Only valid after Next returned
// true.
func (c *queryCache) Entity() Entity {
	return c.cur.entities[c.row]
}

// Len returns the number of entities currently held by the matched
// archetypes.
func (c *queryCache) Len() int {
	n := 0
	for _, a := range c.archetypes {
		n += len(a.entities)
	}
	return n
}

// Entities collects every matched entity into a new slice.
func (c *queryCache) Entities() []Entity {
	out := make([]Entity, 0, c.Len())
	for _, a := range c.archetypes {
		out = append(out, a.entities...)
	}
	return out
}

// Archetypes returns the archetypes matched at construction.
func (c *queryCache) Archetypes() []*Archetype {
	return c.archetypes
}

// Query iterates every entity that has a T component.
//
// Example:
//
//	q := archecs.NewQuery[Position](world)
//	for q.Next() {
//	    p := q.Get()
//	    // ...
//	}
type Query[T any] struct {
	queryCache
	store *DenseStore[T]
	id    ComponentID
}

// NewQuery matches the non-empty archetypes whose signature holds T.
func NewQuery[T any](w *World) *Query[T] {
	id := Register[T](w.registry)
	return &Query[T]{queryCache: newQueryCache(w, id), id: id}
}

// Next advances the cursor. It returns false when iteration is complete.
func (q *Query[T]) Next() bool {
	ok, entered := q.step()
	if entered {
		q.store = storeOf[T](q.cur, q.id)
	}
	return ok
}

// Get returns the T component at the cursor.
func (q *Query[T]) Get() *T {
	return &q.store.values[q.row]
}

// All rewinds the query and yields every entity with its component.
func (q *Query[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		q.Reset()
		for q.Next() {
			if !yield(q.Entity(), q.Get()) {
				return
			}
		}
	}
}

// Each rewinds the query and calls fn for every matched entity.
func (q *Query[T]) Each(fn func(e Entity, v *T)) {
	q.Reset()
	for q.Next() {
		fn(q.Entity(), q.Get())
	}
}

// Query2 iterates every entity that has both A and B.
type Query2[A, B any] struct {
	queryCache
	storeA *DenseStore[A]
	storeB *DenseStore[B]
	idA    ComponentID
	idB    ComponentID
}

// NewQuery2 matches the non-empty archetypes whose signature holds A and B.
func NewQuery2[A, B any](w *World) *Query2[A, B] {
	idA, idB := Register[A](w.registry), Register[B](w.registry)
	return &Query2[A, B]{queryCache: newQueryCache(w, idA, idB), idA: idA, idB: idB}
}

// Next advances the cursor. It returns false when iteration is complete.
func (q *Query2[A, B]) Next() bool {
	ok, entered := q.step()
	if entered {
		q.storeA = storeOf[A](q.cur, q.idA)
		q.storeB = storeOf[B](q.cur, q.idB)
	}
	return ok
}

// Get returns the A and B components at the cursor.
func (q *Query2[A, B]) Get() (*A, *B) {
	return &q.storeA.values[q.row], &q.storeB.values[q.row]
}

// Each rewinds the query and calls fn for every matched entity.
func (q *Query2[A, B]) Each(fn func(e Entity, a *A, b *B)) {
	q.Reset()
	for q.Next() {
		a, b := q.Get()
		fn(q.Entity(), a, b)
	}
}

// Query3 iterates every entity that has A, B and C.
type Query3[A, B, C any] struct {
	queryCache
	storeA *DenseStore[A]
	storeB *DenseStore[B]
	storeC *DenseStore[C]
	idA    ComponentID
	idB    ComponentID
	idC    ComponentID
}

// NewQuery3 matches the non-empty archetypes whose signature holds A, B and C.
func NewQuery3[A, B, C any](w *World) *Query3[A, B, C] {
	idA, idB, idC := Register[A](w.registry), Register[B](w.registry), Register[C](w.registry)
	return &Query3[A, B, C]{queryCache: newQueryCache(w, idA, idB, idC), idA: idA, idB: idB, idC: idC}
}

// Next advances the cursor. It returns false when iteration is complete.
func (q *Query3[A, B, C]) Next() bool {
	ok, entered := q.step()
	if entered {
		q.storeA = storeOf[A](q.cur, q.idA)
		q.storeB = storeOf[B](q.cur, q.idB)
		q.storeC = storeOf[C](q.cur, q.idC)
	}
	return ok
}

// Get returns the A, B and C components at the cursor.
func (q *Query3[A, B, C]) Get() (*A, *B, *C) {
	return &q.storeA.values[q.row], &q.storeB.values[q.row], &q.storeC.values[q.row]
}

// Each rewinds the query and calls fn for every matched entity.
func (q *Query3[A, B, C]) Each(fn func(e Entity, a *A, b *B, c *C)) {
	q.Reset()
	for q.Next() {
		a, b, c := q.Get()
		fn(q.Entity(), a, b, c)
	}
}
