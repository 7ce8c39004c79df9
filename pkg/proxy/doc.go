// Package proxy provides the HTTP surface of the courier relay.
//
// The relay accepts a single authenticated endpoint, POST
// /api/twitter/proxy, whose JSON body (the envelope, see types.Envelope)
// carries the caller's session credentials, a header seed, the feature
// flags and exactly one dispatch target: a packaged method name or a raw
// endpoint path.
//
// # Architecture
//
//   - request.go: envelope parsing and validation (ParseEnvelope)
//   - errors.go: failure shaping (HandleError) and outcome classification
//   - response.go: success, failure and not-found envelopes
//   - metadata.go: request/response metadata for logs and metrics
//   - handlers: the relay, health and not-found handlers
//   - middleware: auth, request ID, logging and panic recovery
//   - types: envelope, client error and response types
//
// # Response Envelopes
//
// Success:
//
//	{"success": true, "data": <result>}
//
// Failure:
//
//	{
//	  "success": false,
//	  "error": "HTTP 429: Rate limit exceeded (code=88)",
//	  "statusCode": 429,
//	  "details": {
//	    "message": "...",
//	    "status": 429,
//	    "statusText": "Too Many Requests",
//	    "url": "https://api.x.com/1.1/statuses/user_timeline.json?[redacted]",
//	    "body": {"errors": [{"message": "Rate limit exceeded", "code": 88}]},
//	    "rawBody": "..."
//	  }
//	}
//
// The HTTP status equals statusCode when it is between 400 and 599, and is
// 500 otherwise. Client errors (*types.RequestError) carry "code" and
// "param" in details instead of the remote fields.
//
// # Request Flow
//
//  1. AuthMiddleware checks the bearer token
//  2. ParseEnvelope reads and validates the body
//  3. The dispatcher runs the packaged method or the raw request
//  4. HandleError shapes any failure
//  5. The handler writes the envelope and records metrics
//
// # Thread Safety
//
// Handlers are stateless apart from the immutable configuration captured at
// construction and are safe for concurrent use.
package proxy
