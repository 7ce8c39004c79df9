// Courier is an authenticated relay to the social platform's private API.
//
// A calling application posts one JSON envelope per call, carrying the
// user's session credentials and either a packaged method name or a raw
// endpoint path. Courier performs the call and answers with a normalized
// success or failure envelope.
//
// Usage:
//
//	# Start the relay (the token is required)
//	COURIER_AUTH_TOKEN=secret courier run
//
//	# Start with a configuration file
//	courier run --config /etc/courier/config.yaml
//
//	# Check a configuration file
//	courier validate --config config.yaml
//
//	# List packaged methods
//	courier methods --output json
//
//	# Show version information
//	courier version
package main

func main() {
	Execute()
}
