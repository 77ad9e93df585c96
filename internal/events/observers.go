package events

import (
	"log"
)

// LoggingObserver logs all events for debugging purposes.
type LoggingObserver struct {
	name    string
	verbose bool
}

// NewLoggingObserver creates a new observer that logs events.
func NewLoggingObserver(verbose bool) *LoggingObserver {
	return &LoggingObserver{
		name:    "LoggingObserver",
		verbose: verbose,
	}
}

// OnEvent logs the event details.
func (o *LoggingObserver) OnEvent(event Event) error {
	if o.verbose {
		log.Printf("[%s] Event: %s, Data: %+v", o.name, event.Type, event.Data)
	} else {
		log.Printf("[%s] Event: %s", o.name, event.Type)
	}
	return nil
}

// GetName returns the observer's name.
func (o *LoggingObserver) GetName() string {
	return o.name
}

// ShouldHandle returns true for all events (logs everything).
func (o *LoggingObserver) ShouldHandle(eventType string) bool {
	return true
}

// FuncObserver adapts a function to the Observer interface. An empty type
// list handles every event.
type FuncObserver struct {
	name  string
	types map[string]bool
	fn    func(Event) error
}

// NewFuncObserver creates an observer that calls fn for the given event types.
func NewFuncObserver(name string, fn func(Event) error, eventTypes ...string) *FuncObserver {
	types := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = true
	}
	return &FuncObserver{name: name, types: types, fn: fn}
}

// OnEvent calls the wrapped function.
func (o *FuncObserver) OnEvent(event Event) error {
	return o.fn(event)
}

// GetName returns the observer's name.
func (o *FuncObserver) GetName() string {
	return o.name
}

// ShouldHandle reports whether eventType is one the observer was created for.
func (o *FuncObserver) ShouldHandle(eventType string) bool {
	return len(o.types) == 0 || o.types[eventType]
}
