package archecs

import "github.com/RoaringBitmap/roaring/v2"

// archetypeIndex is an inverted index from component id to the set of
// archetypes whose signature holds it. A query's matching archetypes are the
// intersection of its ids' bitmaps.
type archetypeIndex struct {
	byComponent map[ComponentID]*roaring.Bitmap
	all         *roaring.Bitmap
}

func newArchetypeIndex() archetypeIndex {
	return archetypeIndex{
		byComponent: make(map[ComponentID]*roaring.Bitmap),
		all:         roaring.New(),
	}
}

func (x *archetypeIndex) insert(a *Archetype) {
	x.all.Add(uint32(a.id))
	for _, id := range a.signature {
		bm, ok := x.byComponent[id]
		if !ok {
			bm = roaring.New()
			x.byComponent[id] = bm
		}
		bm.Add(uint32(a.id))
	}
}

// match returns the ids of the archetypes whose signature contains ids, in
// creation order.
func (x *archetypeIndex) match(ids []ComponentID) []uint32 {
	switch len(ids) {
	case 0:
		return x.all.ToArray()
	case 1:
		bm, ok := x.byComponent[ids[0]]
		if !ok {
			return nil
		}
		return bm.ToArray()
	}
	bms := make([]*roaring.Bitmap, 0, len(ids))
	for _, id := range ids {
		bm, ok := x.byComponent[id]
		if !ok {
			return nil
		}
		bms = append(bms, bm)
	}
	return roaring.FastAnd(bms...).ToArray()
}

func (x *archetypeIndex) reset() {
	clear(x.byComponent)
	x.all.Clear()
}
