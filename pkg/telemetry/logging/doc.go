// Package logging provides structured logging with credential redaction.
//
// New returns a *slog.Logger whose handler
//   - adds request_id, dispatch, method, trace_id and span_id from the
//     record's context, and
//   - redacts session credentials from messages and attributes.
//
// The relay is installed as the default logger, so code logs through the
// slog package functions:
//
//	ctx = logging.WithRequestID(ctx, id)
//	slog.InfoContext(ctx, "relay call completed", "status", 200)
//
// # Redaction
//
// Built-in patterns cover bearer tokens, the auth_token and ct0 cookie
// values and x-csrf-token header values. Attributes whose key names a
// credential (token, cookie, csrf, authorization, secret, password) are
// replaced outright. Additional patterns come from
// telemetry.logging.redact_patterns.
package logging
