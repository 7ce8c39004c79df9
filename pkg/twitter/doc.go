// Package twitter is a minimal session-scoped client for the platform's
// private web API.
//
// A Client is built per relay request from the caller's headers and
// feature flags. Operations are grouped by resource (User, Tweet,
// UserList, Post, V11) and all share one shape:
//
//	result, err := client.User().GetUserByScreenName(ctx, map[string]any{"screenName": "jack"})
//
// GraphQL operations look up their query id, features and field toggles
// in the feature flags under the operation name:
//
//	{"UserByScreenName": {"queryId": "xc8f1g7BYqr6VTzTbvNlGw", "features": {...}}}
//
// # Errors
//
// Failures reported by the platform are *APIError values carrying the
// response metadata. Successful responses without the expected shape are
// *DecodeError values wrapping ErrUndefinedField or ErrAccessDenied.
// Everything else (missing flags, transport failures) is a plain error with
// no response attached.
package twitter
