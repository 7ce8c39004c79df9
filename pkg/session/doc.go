// Package session assembles the outgoing header set for a caller's
// platform session: the caller's baseline headers, the session cookie and
// CSRF header, and the optional transaction id.
package session
