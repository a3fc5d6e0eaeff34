package archecs

import (
	"fmt"
	"math"
)

// Entity is an opaque generational handle packed as (index << 32) | version.
// A handle is valid only while the World's slot at Index still carries the
// same Version.
type Entity uint64

// Null is never returned by CreateEntity and is never valid.
const Null Entity = math.MaxUint64

// NewEntity packs an index and a version into a handle.
func NewEntity(index, version uint32) Entity {
	return Entity(uint64(index)<<32 | uint64(version))
}

// Index returns the entity-table slot of the handle.
func (e Entity) Index() uint32 {
	return uint32(e >> 32)
}

// Version returns the generation of the handle.
func (e Entity) Version() uint32 {
	return uint32(e)
}

func (e Entity) String() string {
	if e == Null {
		return "Entity(null)"
	}
	return fmt.Sprintf("Entity(%dv%d)", e.Index(), e.Version())
}

// entityMeta is the per-slot record: the live occupant and the archetype that
// currently holds it.
type entityMeta struct {
	entity    Entity
	archetype archetypeID // noArchetype when the entity has no components
	alive     bool
}

// entityRegistry issues and recycles handles. Freed slots are reused in the
// order they were freed.
type entityRegistry struct {
	metas    []entityMeta
	freeIDs  []uint32 // FIFO queue, live part is freeIDs[freeHead:]
	freeHead int
	alive    int
}

func newEntityRegistry(capacity int) entityRegistry {
	return entityRegistry{
		metas:   make([]entityMeta, 0, capacity),
		freeIDs: make([]uint32, 0, capacity/4),
	}
}

// create pops a recycled slot and bumps its version, or appends a new slot
// with version 0.
func (r *entityRegistry) create() Entity {
	var e Entity
	if r.freeHead < len(r.freeIDs) {
		idx := r.freeIDs[r.freeHead]
		r.freeHead++
		if r.freeHead == len(r.freeIDs) {
			r.freeIDs = r.freeIDs[:0]
			r.freeHead = 0
		}
		meta := &r.metas[idx]
		e = NewEntity(idx, meta.entity.Version()+1)
		meta.entity = e
		meta.archetype = noArchetype
		meta.alive = true
	} else {
		idx := len(r.metas)
		if idx >= math.MaxUint32 {
			panic("ecs: entity index space exhausted")
		}
		e = NewEntity(uint32(idx), 0)
		r.metas = append(r.metas, entityMeta{entity: e, archetype: noArchetype, alive: true})
	}
	r.alive++
	return e
}

// destroy frees the slot of a valid handle.
func (r *entityRegistry) destroy(e Entity) {
	meta := &r.metas[e.Index()]
	meta.alive = false
	meta.archetype = noArchetype
	if r.freeHead > 0 && len(r.freeIDs) == cap(r.freeIDs) {
		// compact the consumed head before append would reallocate
		n := copy(r.freeIDs, r.freeIDs[r.freeHead:])
		r.freeIDs = r.freeIDs[:n]
		r.freeHead = 0
	}
	r.freeIDs = append(r.freeIDs, e.Index())
	r.alive--
}

func (r *entityRegistry) isValid(e Entity) bool {
	idx := e.Index()
	if int64(idx) >= int64(len(r.metas)) {
		return false
	}
	meta := &r.metas[idx]
	return meta.alive && meta.entity == e
}

// meta returns the record of a valid handle.
func (r *entityRegistry) meta(e Entity) *entityMeta {
	return &r.metas[e.Index()]
}

func (r *entityRegistry) free() int {
	return len(r.freeIDs) - r.freeHead
}

// reset frees every slot, keeping versions so stale handles stay invalid.
func (r *entityRegistry) reset() {
	r.freeIDs = r.freeIDs[:0]
	r.freeHead = 0
	for i := range r.metas {
		meta := &r.metas[i]
		meta.alive = false
		meta.archetype = noArchetype
		r.freeIDs = append(r.freeIDs, uint32(i))
	}
	r.alive = 0
}
