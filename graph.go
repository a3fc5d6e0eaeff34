package archecs

import (
	"slices"

	"github.com/rs/zerolog"
)

// newArchetype appends a node for sig to the arena. sig must be sorted and
// absent from the graph. Stores for the types parent already holds are
// siblings of the parent's; the rest come from the registry.
func (w *World) newArchetype(sig Signature, parent *Archetype) *Archetype {
	a := &Archetype{
		id:        archetypeID(len(w.archetypes)),
		signature: slices.Clone(sig),
		stores:    make([]Container, len(sig)),
		add:       make(map[ComponentID]archetypeID),
		remove:    make(map[ComponentID]archetypeID),
	}
	for i, id := range a.signature {
		if parent != nil {
			if s := parent.Store(id); s != nil {
				a.stores[i] = s.NewSibling()
				continue
			}
		}
		a.stores[i] = w.registry.newStore(id, w.cfg.PageSize)
	}
	w.archetypes = append(w.archetypes, a)
	w.index.insert(a)

	if e := w.logger.Debug(); e.Enabled() {
		names := zerolog.Arr()
		for _, name := range w.registry.names(a.signature) {
			names = names.Str(name)
		}
		e.Int("archetype_id", int(a.id)).Array("components", names).Msg("archetype created")
	}
	Publish(w.events, ArchetypeCreated{ID: int(a.id), Signature: a.Signature()})
	return a
}

// archetypeFor walks from the root following the add edge of each id of
// sig in turn, creating the missing nodes on the way.
func (w *World) archetypeFor(sig Signature) *Archetype {
	cur := w.archetypes[rootArchetype]
	for i, id := range sig {
		next, ok := cur.add[id]
		if !ok {
			// cur holds sig[:i], so the new node holds sig[:i+1]
			n := w.newArchetype(sig[:i+1], cur)
			cur.add[id] = n.id
			n.remove[id] = cur.id
			next = n.id
		}
		cur = w.archetypes[next]
	}
	return cur
}

// neighbour returns the archetype one type away from src, caching the edge
// in both directions.
func (w *World) neighbour(src *Archetype, id ComponentID, adding bool) *Archetype {
	edges := src.remove
	if adding {
		edges = src.add
	}
	if next, ok := edges[id]; ok {
		return w.archetypes[next]
	}
	var dst *Archetype
	if adding {
		w.scratch = src.signature.union(w.scratch[:0], []ComponentID{id})
		dst = w.archetypeFor(w.scratch)
		src.add[id] = dst.id
		dst.remove[id] = src.id
	} else {
		w.scratch = src.signature.difference(w.scratch[:0], []ComponentID{id})
		dst = w.archetypeFor(w.scratch)
		src.remove[id] = dst.id
		dst.add[id] = src.id
	}
	return dst
}

// migrate moves every component of e out of src: types that dst shares are
// transplanted, the rest are deleted. e leaves src's entity list but is not
// yet pushed to dst.
func (w *World) migrate(e Entity, src, dst *Archetype) {
	row, _ := src.row(e)
	slot := e.Index()
	for i, id := range src.signature {
		if d := dst.Store(id); d != nil {
			src.stores[i].MoveOneInto(slot, d)
		} else {
			src.stores[i].DeleteOne(slot)
		}
	}
	src.swapRemove(row)
}

// detach deletes every component of e and leaves it without an archetype.
func (w *World) detach(e Entity, src *Archetype) {
	row, _ := src.row(e)
	slot := e.Index()
	for _, s := range src.stores {
		s.DeleteOne(slot)
	}
	src.swapRemove(row)
	w.entities.meta(e).archetype = noArchetype
}

// attach pushes e onto dst once every store of dst holds its value.
func (w *World) attach(e Entity, dst *Archetype) {
	dst.push(e)
	w.entities.meta(e).archetype = dst.id
}
