package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// Setup installs a tracer provider that forwards finished spans to the
// logger. The returned shutdown function flushes pending spans.
func Setup(log ports.Logger) func(ctx context.Context) error {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(newLogProcessor(log)),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown
}

// logProcessor reports span durations through the application logger. It is
// intentionally lossy: spans carry timing context for humans, not export
// pipelines.
type logProcessor struct {
	log ports.Logger
}

func newLogProcessor(log ports.Logger) *logProcessor {
	return &logProcessor{log: log}
}

var _ sdktrace.SpanProcessor = (*logProcessor)(nil)

func (p *logProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

func (p *logProcessor) OnEnd(span sdktrace.ReadOnlySpan) {
	elapsed := span.EndTime().Sub(span.StartTime())
	p.log.Info(fmt.Sprintf("%s took %s", span.Name(), elapsed.Round(time.Microsecond)))
}

func (p *logProcessor) Shutdown(_ context.Context) error { return nil }

func (p *logProcessor) ForceFlush(_ context.Context) error { return nil }
