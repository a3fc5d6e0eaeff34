// Package archecs implements an archetype-graph Entity Component System for Go.
//
// Features:
//   - Generational 64-bit entity handles with FIFO slot recycling.
//   - Per-type dense stores (paged sparse sets) behind a small type-erased
//     capability interface.
//   - An archetype graph keyed by sorted component signatures, with add and
//     remove transitions cached on the nodes after first use.
//   - Back-to-front query iteration, so the entity being visited may be
//     destroyed from inside the loop. Moving it into another matched
//     archetype that has not been walked yet visits it a second time.
//
// A World is driven from a single update loop. None of its methods lock, and
// none of them may be called concurrently on the same World.
package archecs

const (
	// DefaultPageSize is the number of sparse entries per page of a dense
	// store. It must be a power of two.
	DefaultPageSize = 4096

	// DefaultInitialCapacity is the number of entity slots reserved up front.
	DefaultInitialCapacity = 1024

	// absent marks a sparse entry with no packed value.
	absent int32 = -1
)
