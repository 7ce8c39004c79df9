// Package handlers provides the HTTP handlers of the relay server.
//
// # Handler Types
//
//   - RelayHandler: POST /api/twitter/proxy. Parses the envelope, runs it
//     through a Relay (the dispatcher) and writes the success or failure
//     envelope. Records relay metrics and logs one outcome line.
//   - HealthHandler: liveness probe (always 200 while the process serves).
//   - NotFound: the fixed 404 body for every other path and method.
//
// # Request Flow
//
//  1. Parse and validate the envelope (client errors stop here)
//  2. Select the dispatch path and tag the context for logging
//  3. Execute through the Relay
//  4. Shape failures with proxy.HandleError
//  5. Write the response, then record metrics and log the outcome
//
// Authentication is not performed here; the server wraps RelayHandler with
// middleware.AuthMiddleware.
package handlers
