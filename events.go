package archecs

import "reflect"

// ArchetypeCreated is published when structural mutation grows the graph.
type ArchetypeCreated struct {
	Signature Signature
	ID        int
}

// EntityDestroyed is published after an entity's components are removed and
// its slot is freed.
type EntityDestroyed struct {
	Entity Entity
}

// EventBus delivers typed events synchronously to subscribers. A World owns
// one and publishes its structural events on it.
//
// Publish does not allocate.
type EventBus struct {
	eventTypeMap map[reflect.Type]int
	handlers     [][]any
}

// Subscribe registers handler for events of type T. Handlers run in
// subscription order.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.getEventTypeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish calls every handler subscribed to T with event.
func Publish[T any](bus *EventBus, event T) {
	if id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) int {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]int)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	id := len(bus.handlers)
	bus.eventTypeMap[t] = id
	bus.handlers = append(bus.handlers, nil)
	return id
}
