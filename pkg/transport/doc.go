// Package transport provides the outbound HTTP plumbing shared by both
// relay call paths.
//
// NewClient builds one pooled client for the process. Its Decoding
// round-tripper negotiates gzip, deflate and zstd and hands callers plain
// bodies. Capture records the raw status and body of the last response for
// a single relay request.
package transport
