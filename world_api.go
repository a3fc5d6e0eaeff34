package archecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// Add attaches a component of type T with value v to e. The entity moves to
// the archetype whose signature is its current one plus T; components it
// already had are carried over.
//
// Adding a type the entity already has is a precondition violation reported
// through the World's AssertPolicy.
//
// Parameters:
//   - w: The World holding e.
//   - e: The entity to extend.
//   - v: The component value.
//
// Returns:
//   - nil on success, or the violation when the policy is AssertLog.
func Add[T any](w *World, e Entity, v T) error {
	id := Register[T](w.registry)
	ids := [1]ComponentID{id}
	dst, err := w.prepareAdd(e, ids[:])
	if err != nil || dst == nil {
		return err
	}
	storeOf[T](dst, id).Emplace(e.Index(), v)
	w.attach(e, dst)
	return nil
}

// Add2 attaches two components in a single archetype move.
func Add2[A, B any](w *World, e Entity, a A, b B) error {
	idA, idB := Register[A](w.registry), Register[B](w.registry)
	ids := [2]ComponentID{idA, idB}
	dst, err := w.prepareAdd(e, ids[:])
	if err != nil || dst == nil {
		return err
	}
	slot := e.Index()
	storeOf[A](dst, idA).Emplace(slot, a)
	storeOf[B](dst, idB).Emplace(slot, b)
	w.attach(e, dst)
	return nil
}

// Add3 attaches three components in a single archetype move.
func Add3[A, B, C any](w *World, e Entity, a A, b B, c C) error {
	idA, idB, idC := Register[A](w.registry), Register[B](w.registry), Register[C](w.registry)
	ids := [3]ComponentID{idA, idB, idC}
	dst, err := w.prepareAdd(e, ids[:])
	if err != nil || dst == nil {
		return err
	}
	slot := e.Index()
	storeOf[A](dst, idA).Emplace(slot, a)
	storeOf[B](dst, idB).Emplace(slot, b)
	storeOf[C](dst, idC).Emplace(slot, c)
	w.attach(e, dst)
	return nil
}

// Set overwrites the T component of e, adding it when e does not have one.
func Set[T any](w *World, e Entity, v T) error {
	if p := lookup[T](w, e); p != nil {
		*p = v
		return nil
	}
	return Add(w, e, v)
}

// Remove detaches the component of type T from e. Removing the last
// component leaves e valid but without an archetype.
//
// Removing a type the entity does not have is a precondition violation.
func Remove[T any](w *World, e Entity) error {
	ids := [1]ComponentID{Register[T](w.registry)}
	return w.removeIDs(e, ids[:])
}

// Remove2 detaches two components in a single archetype move.
func Remove2[A, B any](w *World, e Entity) error {
	ids := [2]ComponentID{Register[A](w.registry), Register[B](w.registry)}
	return w.removeIDs(e, ids[:])
}

// Remove3 detaches three components in a single archetype move.
func Remove3[A, B, C any](w *World, e Entity) error {
	ids := [3]ComponentID{Register[A](w.registry), Register[B](w.registry), Register[C](w.registry)}
	return w.removeIDs(e, ids[:])
}

// Contains reports whether e is live and has a component of type T. It never
// fails.
func Contains[T any](w *World, e Entity) bool {
	id, ok := Lookup[T](w.registry)
	return ok && w.contains(e, id)
}

// Contains2 reports whether e has both A and B.
func Contains2[A, B any](w *World, e Entity) bool {
	idA, okA := Lookup[A](w.registry)
	idB, okB := Lookup[B](w.registry)
	return okA && okB && w.contains(e, idA, idB)
}

// Contains3 reports whether e has A, B and C.
func Contains3[A, B, C any](w *World, e Entity) bool {
	idA, okA := Lookup[A](w.registry)
	idB, okB := Lookup[B](w.registry)
	idC, okC := Lookup[C](w.registry)
	return okA && okB && okC && w.contains(e, idA, idB, idC)
}

// Get returns a pointer to the T component of e.
//
// The pointer refers into the owning archetype's dense store and must not be
// kept across Add, Remove, Set on a missing type, or Destroy of any entity.
// Calling Get for a type e lacks is a precondition violation; nil is returned
// when the policy lets the call through.
func Get[T any](w *World, e Entity) *T {
	p := lookup[T](w, e)
	if p == nil && w.checking() {
		_ = w.violate(missing[T](w, e))
	}
	return p
}

// Get2 returns pointers to the A and B components of e.
func Get2[A, B any](w *World, e Entity) (*A, *B) {
	if w.checking() && !Contains2[A, B](w, e) {
		_ = w.violate(eris.Wrapf(ErrComponentMissing, "%s lacks one of %s, %s", e, typeName[A](), typeName[B]()))
		return nil, nil
	}
	return lookup[A](w, e), lookup[B](w, e)
}

// Get3 returns pointers to the A, B and C components of e.
func Get3[A, B, C any](w *World, e Entity) (*A, *B, *C) {
	if w.checking() && !Contains3[A, B, C](w, e) {
		_ = w.violate(eris.Wrapf(ErrComponentMissing, "%s lacks one of %s, %s, %s", e, typeName[A](), typeName[B](), typeName[C]()))
		return nil, nil, nil
	}
	return lookup[A](w, e), lookup[B](w, e), lookup[C](w, e)
}

// lookup returns the T component of e, or nil.
func lookup[T any](w *World, e Entity) *T {
	id, ok := Lookup[T](w.registry)
	if !ok || !w.contains(e, id) {
		return nil
	}
	return storeOf[T](w.archetypeOf(e), id).Get(e.Index())
}

func missing[T any](w *World, e Entity) error {
	if !w.entities.isValid(e) {
		return eris.Wrapf(ErrEntityNotFound, "cannot get %s of %s", typeName[T](), e)
	}
	return eris.Wrapf(ErrComponentMissing, "%s has no %s", e, typeName[T]())
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
