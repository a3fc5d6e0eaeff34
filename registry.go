package archecs

import (
	"fmt"
	"reflect"
)

// ComponentID identifies a component type inside one TypeRegistry. Ids are
// assigned in registration order and are not stable across runs.
type ComponentID uint32

// componentInfo is what the registry knows about one component type.
type componentInfo struct {
	typ      reflect.Type
	newStore func(pageSize int) Container
}

// TypeRegistry assigns component ids. A World owns one unless it is given a
// shared registry through WithRegistry.
type TypeRegistry struct {
	ids   map[reflect.Type]ComponentID
	infos []componentInfo
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{ids: make(map[reflect.Type]ComponentID, 16)}
}

// Register returns the id of T, assigning the next one on first use.
func Register[T any](r *TypeRegistry) ComponentID {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	id := ComponentID(len(r.infos))
	r.ids[t] = id
	r.infos = append(r.infos, componentInfo{
		typ: t,
		newStore: func(pageSize int) Container {
			return NewDenseStore[T](id, pageSize)
		},
	})
	return id
}

// Lookup returns the id of T without registering it.
func Lookup[T any](r *TypeRegistry) (ComponentID, bool) {
	id, ok := r.ids[reflect.TypeFor[T]()]
	return id, ok
}

// Len returns the number of registered types.
func (r *TypeRegistry) Len() int {
	return len(r.infos)
}

// Type returns the Go type registered under id, or nil.
func (r *TypeRegistry) Type(id ComponentID) reflect.Type {
	if int(id) >= len(r.infos) {
		return nil
	}
	return r.infos[id].typ
}

// Name returns a printable name for id.
func (r *TypeRegistry) Name(id ComponentID) string {
	if t := r.Type(id); t != nil {
		return t.String()
	}
	return fmt.Sprintf("component#%d", id)
}

func (r *TypeRegistry) newStore(id ComponentID, pageSize int) Container {
	return r.infos[id].newStore(pageSize)
}

func (r *TypeRegistry) names(ids []ComponentID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = r.Name(id)
	}
	return out
}
