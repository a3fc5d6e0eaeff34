package archecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// Resources holds at most one value per Go type. Slots freed by Remove are
// reused before the slice grows.
type Resources struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// add stores res under t. It returns false when a value of that type is
// already held.
func (r *Resources) add(t reflect.Type, res any) bool {
	if r.types == nil {
		r.types = make(map[reflect.Type]int)
	}
	if _, ok := r.types[t]; ok {
		return false
	}
	var id int
	if n := len(r.freeIDs); n > 0 {
		id = r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		r.items[id] = res
	} else {
		id = len(r.items)
		r.items = append(r.items, res)
	}
	r.types[t] = id
	return true
}

func (r *Resources) remove(t reflect.Type) bool {
	id, ok := r.types[t]
	if !ok {
		return false
	}
	delete(r.types, t)
	r.items[id] = nil
	r.freeIDs = append(r.freeIDs, id)
	return true
}

// Len returns the number of resources held.
func (r *Resources) Len() int {
	return len(r.types)
}

// Clear drops every resource.
func (r *Resources) Clear() {
	clear(r.items)
	r.items = r.items[:0]
	clear(r.types)
	r.freeIDs = r.freeIDs[:0]
}

// Resources returns the World's singleton store.
func (w *World) Resources() *Resources {
	return &w.resources
}

// AddResource stores res as the World's only *T. Adding a nil or a second *T
// is a precondition violation; with checks off the call keeps the resource
// already held.
func AddResource[T any](w *World, res *T) error {
	if res == nil {
		if w.checking() {
			return w.violate(eris.Errorf("cannot add nil %s resource", typeName[T]()))
		}
		return nil
	}
	if !w.resources.add(reflect.TypeFor[*T](), res) && w.checking() {
		return w.violate(eris.Wrapf(ErrResourceExists, "%s", typeName[T]()))
	}
	return nil
}

// Resource returns the World's *T, or nil.
func Resource[T any](w *World) *T {
	id, ok := w.resources.types[reflect.TypeFor[*T]()]
	if !ok {
		return nil
	}
	return w.resources.items[id].(*T)
}

// HasResource reports whether the World holds a *T.
func HasResource[T any](w *World) bool {
	_, ok := w.resources.types[reflect.TypeFor[*T]()]
	return ok
}

// RemoveResource drops the World's *T. It reports whether one was held.
func RemoveResource[T any](w *World) bool {
	return w.resources.remove(reflect.TypeFor[*T]())
}
