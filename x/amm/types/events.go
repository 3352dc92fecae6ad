package types

// Attribute is a single key/value pair attached to an event.
type Attribute struct {
	Key   string
	Value string
}

// Event is an observable record emitted by the pool engine. Events are
// ordered per call and only become visible when the call succeeds.
type Event struct {
	Type       string
	Attributes []Attribute
}

// NewAttribute returns a new event attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// NewEvent constructs an event of the given type with the given attributes.
func NewEvent(ty string, attrs ...Attribute) Event {
	return Event{Type: ty, Attributes: attrs}
}

// EventManager collects events emitted during pool operations.
type EventManager struct {
	events []Event
}

// NewEventManager returns an empty event manager.
func NewEventManager() *EventManager {
	return &EventManager{}
}

// EmitEvent appends an event to the manager.
func (em *EventManager) EmitEvent(event Event) {
	em.events = append(em.events, event)
}

// Events returns all events emitted so far, in emission order.
func (em *EventManager) Events() []Event {
	return em.events
}
