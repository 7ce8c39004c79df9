// Package passthrough forwards caller-described HTTP requests to the
// platform.
//
// The caller chooses the method, path, query and body. The executor
// chooses the origin from the path, attaches the session credentials last
// so they cannot be overridden, and adds the transaction id header when a
// complete seed is supplied.
package passthrough
