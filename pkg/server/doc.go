// Package server provides the HTTP server of the courier relay.
//
// The server ties the relay handler, the liveness and metrics endpoints and
// the middleware chain together and owns the listener lifecycle.
//
// # Routes
//
//	POST /api/twitter/proxy   relay (bearer auth)
//	GET  /health              liveness (telemetry.health)
//	GET  /metrics             Prometheus (telemetry.metrics)
//	*                         {"success":false,"error":"Not Found"} 404
//
// # Middleware Chain
//
//	Recovery → Tracing → RequestID → Logging → mux
//
// # Basic Usage
//
//	srv := server.NewServer(cfg, server.Dependencies{
//	    Relay:   dispatcher,
//	    Metrics: collector,
//	    Tracer:  tracer,
//	    Version: version,
//	})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled or Stop is called, then drains in-flight requests for at most
// proxy.shutdown_timeout.
package server
