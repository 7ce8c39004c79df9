// Package types defines the wire types of the relay endpoint.
//
// # Request
//
// Envelope is the JSON body of POST /api/twitter/proxy:
//
//	{
//	  "authToken": "...",
//	  "csrfToken": "...",
//	  "headers": {"api": {"authorization": "Bearer AAAA..."}},
//	  "featureFlags": {"UserByScreenName": {"queryId": "..."}},
//	  "transactionSeed": {"verification": "...", "animationKey": "..."},
//	  "methodName": "getUserByScreenName",
//	  "methodParams": {"screenName": "jack"}
//	}
//
// The raw path replaces methodName/methodParams with endpointPath,
// httpMethod, queryParams, requestBody and extraHeaders.
//
// # Responses
//
// Success:
//
//	{"success": true, "data": ...}
//
// Failure:
//
//	{"success": false, "error": "HTTP 429: Rate limit exceeded (code=88)",
//	 "statusCode": 429, "details": {...}}
//
// Client errors are RequestError values carrying one of the Code*
// constants.
package types
