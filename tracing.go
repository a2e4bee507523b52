package incr

import (
	"context"

	"go.uber.org/zap"
)

type tracingKey struct{}

// WithTracing installs a zap logger on ctx, recoverable with TracingFromContext.
// Mirrors the teacher's own WithTracing(ctx) convention in graph.go, backed
// by the logging library the arena-backed cache in the retrieval pack
// reaches for in its own hot paths.
func WithTracing(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, tracingKey{}, logger)
}

// TracingFromContext recovers a logger installed by WithTracing, or the
// no-op logger if none was installed.
func TracingFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(tracingKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// TraceStabilizeStart logs the start of a stabilization pass, matching the
// teacher's stabilizeStart tracing call.
func TraceStabilizeStart(ctx context.Context, e *Engine) {
	TracingFromContext(ctx).Debug("stabilize start",
		zap.Uint64("generation", uint64(e.generation)),
		zap.Int("queued", e.graph.queue.len()),
	)
}

// TraceStabilizeEnd logs the end of a stabilization pass.
func TraceStabilizeEnd(ctx context.Context, e *Engine) {
	TracingFromContext(ctx).Debug("stabilize end",
		zap.Uint64("generation", uint64(e.generation)),
		zap.Uint64("recomputed", e.numNodesRecomputed),
		zap.Uint64("changed", e.numNodesChanged),
	)
}

// StabilizeTraced runs Stabilize with start/end tracing around it, the
// traced equivalent of the teacher's graph.Stabilize(ctx).
func (e *Engine) StabilizeTraced(ctx context.Context) {
	TraceStabilizeStart(ctx, e)
	e.Stabilize()
	TraceStabilizeEnd(ctx, e)
}
