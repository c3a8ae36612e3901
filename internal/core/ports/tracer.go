package ports

import "context"

// Span represents a unit of traced work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error on the span.
	RecordError(err error)
	// SetAttribute attaches a key/value attribute to the span.
	SetAttribute(key string, value any)
}

// Tracer creates spans around engine operations (load passes, reload
// batches). Implementations may be no-ops.
type Tracer interface {
	// Start begins a span with the given name.
	Start(ctx context.Context, name string) (context.Context, Span)
}
