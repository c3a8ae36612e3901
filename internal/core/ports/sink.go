package ports

import "github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"

// EventSink consumes typed engine events. Implementations must not block:
// the coordinator emits from its own goroutines.
type EventSink interface {
	// Emit delivers one event.
	Emit(event domain.Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(domain.Event)

// Emit implements EventSink.
func (f EventSinkFunc) Emit(event domain.Event) { f(event) }
