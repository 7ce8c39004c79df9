// Package transaction computes the per-request x-client-transaction-id
// token the platform expects on authenticated calls.
//
// The token is derived from the request method and path plus two values
// the caller scrapes from the platform's web app: a verification key and
// an animation key. Without both, no token is produced and the header is
// simply omitted.
package transaction
