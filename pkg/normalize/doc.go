// Package normalize turns every failure the relay can observe into one
// stable shape.
//
// Remote failures are represented by RemoteError, built with
// NewRemoteError from whatever response metadata is available. Normalize
// then reduces any error, remote or local, to a Normalized value:
//
//	n := normalize.Normalize(err, normalize.Options{})
//	// n.StatusCode == 429
//	// n.Message    == "HTTP 429: Rate limit exceeded (code=88)"
//
// URLs are always surfaced through TruncateURL, which drops the query string.
package normalize
