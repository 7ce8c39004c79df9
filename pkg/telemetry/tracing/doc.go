// Package tracing provides OpenTelemetry tracing for the relay, exported
// over OTLP gRPC.
//
// Tracing is disabled by default. When enabled, every inbound request gets
// a server span (HTTPMiddleware) and every dispatch a child span named
// "dispatch.method" or "dispatch.raw":
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "dispatch.raw")
//	defer span.End()
//
// The caller's traceparent is honored on the way in. Trace context is never
// injected into requests sent to the platform.
package tracing
