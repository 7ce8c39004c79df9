package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/courier/pkg/dispatch"
	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/proxy"
	"mercator-hq/courier/pkg/proxy/middleware"
	"mercator-hq/courier/pkg/telemetry/logging"
	"mercator-hq/courier/pkg/telemetry/metrics"
)

// RelayConfig configures a RelayHandler.
type RelayConfig struct {
	// Relay executes envelopes. Required.
	Relay Relay

	// MaxBodyBytes limits the envelope size. Zero means proxy.DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Errors controls failure body shaping
	Errors normalize.Options

	// Metrics is optional
	Metrics *metrics.Collector
}

// RelayHandler serves POST /api/twitter/proxy.
type RelayHandler struct {
	relay        Relay
	maxBodyBytes int64
	errors       normalize.Options
	metrics      *metrics.Collector
}

// NewRelayHandler creates a relay handler.
func NewRelayHandler(cfg RelayConfig) *RelayHandler {
	return &RelayHandler{
		relay:        cfg.Relay,
		maxBodyBytes: cfg.MaxBodyBytes,
		errors:       cfg.Errors,
		metrics:      cfg.Metrics,
	}
}

// ServeHTTP implements http.Handler.
//
// Authentication is applied by the caller (middleware.AuthMiddleware). Any
// method other than POST answers the fixed not-found body.
func (h *RelayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		NotFound(w, r)
		return
	}

	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	startTime := middleware.GetStartTime(ctx)
	if startTime.IsZero() {
		startTime = time.Now()
	}

	env, err := proxy.ParseEnvelope(r, h.maxBodyBytes)
	meta := proxy.ExtractRequestMetadata(r, requestID, env)

	ctx = logging.WithDispatch(ctx, meta.Dispatch)
	if meta.Dispatch == metrics.DispatchMethod {
		ctx = logging.WithMethod(ctx, meta.Target)
	}

	var (
		data    any
		isEmpty func() bool
	)
	if err == nil {
		ctx, isEmpty = dispatch.TrackEmpty(ctx)
		data, err = h.relay.Execute(ctx, env)
	}

	status := http.StatusOK
	if err != nil {
		failure := proxy.HandleError(err, h.errors)
		status = failure.HTTPStatusCode()
		if werr := proxy.WriteFailure(w, failure); werr != nil {
			slog.ErrorContext(ctx, "failed to write error response", "error", werr)
		}
	} else if werr := proxy.WriteSuccess(w, data); werr != nil {
		slog.ErrorContext(ctx, "failed to write response", "error", werr)
	}

	empty := isEmpty != nil && isEmpty()
	result := proxy.ExtractResponseMetadata(requestID, status, err, empty, time.Since(startTime))

	h.metrics.RecordRequest(meta.Dispatch, result.Outcome, result.Latency)
	if result.RemoteStatus != 0 {
		h.metrics.RecordUpstreamError(meta.Dispatch, result.RemoteStatus)
	}

	attrs := append(meta.LogAttrs(),
		"outcome", result.Outcome,
		"status", result.StatusCode,
		"latency_ms", result.Latency.Milliseconds(),
	)
	if err == nil {
		slog.InfoContext(ctx, "relay request succeeded", attrs...)
		return
	}

	attrs = append(attrs, "error", err)
	if result.RemoteStatus != 0 {
		attrs = append(attrs, "remote_status", result.RemoteStatus)
	}
	if result.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "relay request failed", attrs...)
	} else {
		slog.WarnContext(ctx, "relay request failed", attrs...)
	}
}
