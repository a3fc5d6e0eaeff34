package archecs

import "slices"

// archetypeID is the stable position of an archetype in the World's arena.
type archetypeID int32

const (
	noArchetype   archetypeID = -1
	rootArchetype archetypeID = 0
)

// Archetype groups every entity that has exactly the component types of its
// signature. Row i of the entity list and offset i of every store describe
// the same entity.
type Archetype struct {
	signature Signature
	stores    []Container // parallel to signature
	entities  []Entity
	add       map[ComponentID]archetypeID // signature + id
	remove    map[ComponentID]archetypeID // signature - id
	id        archetypeID
}

// ID returns the archetype's position in its World. Ids are reused after
// World.Reset.
func (a *Archetype) ID() int {
	return int(a.id)
}

// Signature returns a copy of the archetype's component ids.
func (a *Archetype) Signature() Signature {
	return slices.Clone(a.signature)
}

// Len returns the number of entities in the archetype.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities returns the archetype's entity list. The slice must not be
// modified and is invalidated by the next structural change.
func (a *Archetype) Entities() []Entity {
	return a.entities
}

// Has reports whether id is part of the signature.
func (a *Archetype) Has(id ComponentID) bool {
	return a.signature.Has(id)
}

// Store returns the type-erased store of id, or nil.
func (a *Archetype) Store(id ComponentID) Container {
	i := a.signature.indexOf(id)
	if i < 0 {
		return nil
	}
	return a.stores[i]
}

// storeOf returns the typed store of id, or nil.
func storeOf[T any](a *Archetype, id ComponentID) *DenseStore[T] {
	c := a.Store(id)
	if c == nil {
		return nil
	}
	return c.(*DenseStore[T])
}

// row returns the position of e in the entity list.
func (a *Archetype) row(e Entity) (int, bool) {
	if len(a.stores) == 0 {
		return 0, false
	}
	r, ok := a.stores[0].offset(e.Index())
	if !ok || r >= len(a.entities) || a.entities[r] != e {
		return 0, false
	}
	return r, true
}

func (a *Archetype) push(e Entity) {
	a.entities = append(a.entities, e)
}

// swapRemove moves the last entity into row, the same way the stores
// compact on DeleteOne.
func (a *Archetype) swapRemove(row int) {
	last := len(a.entities) - 1
	a.entities[row] = a.entities[last]
	a.entities = a.entities[:last]
}

func (a *Archetype) edges() int {
	return len(a.add) + len(a.remove)
}
