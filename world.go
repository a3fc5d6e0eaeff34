package archecs

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// World owns every archetype, every dense store and the entity table. It is
// the only mutator of them.
//
// A World is not safe for concurrent use.
type World struct {
	logger     zerolog.Logger
	registry   *TypeRegistry
	events     *EventBus
	archetypes []*Archetype // arena, never reordered; index 0 is the root
	index      archetypeIndex
	entities   entityRegistry
	resources  Resources
	scratch    Signature
	cfg        Config
	policy     AssertPolicy

	levelFromConfig bool
}

// NewWorld creates a World holding only the root archetype.
func NewWorld(opts ...Option) *World {
	w := &World{
		cfg:    DefaultConfig(),
		logger: log.Logger.With().Str("module", "ecs").Logger(),
		events: &EventBus{},
		index:  newArchetypeIndex(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.levelFromConfig {
		level, _ := zerolog.ParseLevel(w.cfg.LogLevel)
		w.logger = w.logger.Level(level)
	}
	if w.registry == nil {
		w.registry = NewTypeRegistry()
	}
	w.entities = newEntityRegistry(w.cfg.InitialCapacity)
	w.archetypes = make([]*Archetype, 0, 16)
	w.newArchetype(nil, nil)
	return w
}

// Registry returns the component registry used by the World.
func (w *World) Registry() *TypeRegistry {
	return w.registry
}

// Events returns the bus the World publishes structural events on.
func (w *World) Events() *EventBus {
	return w.events
}

// Logger returns the World's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// CreateEntity returns a fresh valid handle with no components.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// IsValid reports whether e refers to a live entity.
func (w *World) IsValid(e Entity) bool {
	return w.entities.isValid(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.alive
}

// Destroy removes every component of e and recycles its slot. The handle and
// every copy of it become invalid.
func (w *World) Destroy(e Entity) error {
	if w.checking() && !w.entities.isValid(e) {
		return w.violate(eris.Wrapf(ErrEntityNotFound, "cannot destroy %s", e))
	}
	meta := w.entities.meta(e)
	if meta.archetype != noArchetype {
		w.detach(e, w.archetypes[meta.archetype])
	}
	w.entities.destroy(e)
	Publish(w.events, EntityDestroyed{Entity: e})
	return nil
}

// ComponentIDs returns the sorted component ids of e, or nil when it has
// none.
func (w *World) ComponentIDs(e Entity) (Signature, error) {
	if !w.entities.isValid(e) {
		return nil, eris.Wrapf(ErrEntityNotFound, "cannot list components of %s", e)
	}
	meta := w.entities.meta(e)
	if meta.archetype == noArchetype {
		return nil, nil
	}
	return w.archetypes[meta.archetype].Signature(), nil
}

// View returns the non-empty archetypes whose signature contains ids. The
// result is fixed at call time.
func (w *World) View(ids ...ComponentID) []*Archetype {
	matched := w.index.match(ids)
	out := make([]*Archetype, 0, len(matched))
	for _, id := range matched {
		if a := w.archetypes[id]; len(a.entities) > 0 {
			out = append(out, a)
		}
	}
	return out
}

// Reset destroys every entity and every archetype but the root. Registered
// component ids and resources are kept. Queries and archetype pointers taken before Reset
// must not be used after it.
func (w *World) Reset() {
	root := w.archetypes[rootArchetype]
	clear(root.add)
	clear(root.remove)
	clear(w.archetypes[1:])
	w.archetypes = w.archetypes[:1]
	w.index.reset()
	w.index.insert(root)
	w.entities.reset()
	w.logger.Info().Int("free_slots", w.entities.free()).Msg("world reset")
}

// prepareAdd validates the addition of ids to e and moves e's existing
// components into the destination archetype. The caller emplaces the new
// values and then calls attach. A nil archetype with a nil error means there
// is nothing to do.
func (w *World) prepareAdd(e Entity, ids []ComponentID) (*Archetype, error) {
	if w.checking() && !w.entities.isValid(e) {
		return nil, w.violate(eris.Wrapf(ErrEntityNotFound, "cannot add components to %s", e))
	}
	if len(ids) == 0 {
		return nil, nil
	}
	meta := w.entities.meta(e)
	var src *Archetype
	if meta.archetype != noArchetype {
		src = w.archetypes[meta.archetype]
	}
	if w.checking() {
		if id, dup := duplicate(ids); dup {
			return nil, w.violate(eris.Wrapf(ErrDuplicateComponent, "cannot add %s twice to %s", w.registry.Name(id), e))
		}
		if src != nil {
			for _, id := range ids {
				if src.signature.Has(id) {
					return nil, w.violate(eris.Wrapf(ErrComponentExists, "%s already has %s", e, w.registry.Name(id)))
				}
			}
		}
	}

	var dst *Archetype
	if src != nil && len(ids) == 1 {
		dst = w.neighbour(src, ids[0], true)
	} else {
		var base Signature
		if src != nil {
			base = src.signature
		}
		w.scratch = base.union(w.scratch[:0], ids)
		dst = w.archetypeFor(w.scratch)
	}
	if src != nil {
		w.migrate(e, src, dst)
	}
	return dst, nil
}

// removeIDs strips ids from e, detaching it when nothing is left.
func (w *World) removeIDs(e Entity, ids []ComponentID) error {
	if w.checking() && !w.entities.isValid(e) {
		return w.violate(eris.Wrapf(ErrEntityNotFound, "cannot remove components from %s", e))
	}
	if len(ids) == 0 {
		return nil
	}
	meta := w.entities.meta(e)
	if meta.archetype == noArchetype {
		if w.checking() {
			return w.violate(eris.Wrapf(ErrComponentMissing, "%s has no %s", e, w.registry.Name(ids[0])))
		}
		return nil
	}
	src := w.archetypes[meta.archetype]
	if w.checking() {
		if id, dup := duplicate(ids); dup {
			return w.violate(eris.Wrapf(ErrDuplicateComponent, "cannot remove %s twice from %s", w.registry.Name(id), e))
		}
		for _, id := range ids {
			if !src.signature.Has(id) {
				return w.violate(eris.Wrapf(ErrComponentMissing, "%s has no %s", e, w.registry.Name(id)))
			}
		}
	}

	var dst *Archetype
	if len(ids) == 1 {
		if len(src.signature) == 1 {
			w.detach(e, src)
			return nil
		}
		dst = w.neighbour(src, ids[0], false)
	} else {
		w.scratch = src.signature.difference(w.scratch[:0], ids)
		if len(w.scratch) == 0 {
			w.detach(e, src)
			return nil
		}
		dst = w.archetypeFor(w.scratch)
	}
	w.migrate(e, src, dst)
	w.attach(e, dst)
	return nil
}

// contains reports whether e is live and its archetype holds every id, with
// e present in that archetype's list.
func (w *World) contains(e Entity, ids ...ComponentID) bool {
	if !w.entities.isValid(e) {
		return false
	}
	meta := w.entities.meta(e)
	if meta.archetype == noArchetype {
		return false
	}
	a := w.archetypes[meta.archetype]
	for _, id := range ids {
		if !a.signature.Has(id) {
			return false
		}
	}
	_, ok := a.row(e)
	return ok
}

// archetypeOf returns the archetype holding e. e must be valid.
func (w *World) archetypeOf(e Entity) *Archetype {
	idx := w.entities.meta(e).archetype
	if idx == noArchetype {
		return nil
	}
	return w.archetypes[idx]
}
