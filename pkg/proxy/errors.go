package proxy

import (
	"errors"

	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/proxy/types"
	"mercator-hq/courier/pkg/telemetry/metrics"
)

// HandleError converts any relay failure into the failure envelope.
//
// Client errors (*types.RequestError) keep their code and parameter and map
// to their own status. Everything else goes through normalize.Normalize,
// so remote failures carry the platform's status, message, body and
// redacted URL in the details.
//
// Example usage:
//
//	if err != nil {
//	    WriteFailure(w, HandleError(err, opts))
//	    return
//	}
func HandleError(err error, opts normalize.Options) *types.FailureResponse {
	var reqErr *types.RequestError
	if errors.As(err, &reqErr) {
		return types.NewFailureResponse(reqErr.Message, reqErr.HTTPStatusCode(), &types.ErrorDetails{
			Message: reqErr.Message,
			Code:    reqErr.Code,
			Param:   reqErr.Param,
		})
	}

	n := normalize.Normalize(err, opts)

	details := &types.ErrorDetails{
		Message:    errorText(err),
		StatusText: n.StatusText,
		URL:        n.URL,
		Body:       n.Body,
		RawBody:    n.RawBody,
	}
	var remote *normalize.RemoteError
	if errors.As(err, &remote) {
		details.Status = remote.StatusCode
	}

	return types.NewFailureResponse(n.Message, n.StatusCode, details)
}

// Outcome classifies a relay result for metrics.
func Outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}

	var reqErr *types.RequestError
	if errors.As(err, &reqErr) {
		return metrics.OutcomeClientError
	}

	var remote *normalize.RemoteError
	if errors.As(err, &remote) {
		return metrics.OutcomeRemoteError
	}

	return metrics.OutcomeError
}

// RemoteStatus returns the platform status carried by err, or 0.
func RemoteStatus(err error) int {
	var remote *normalize.RemoteError
	if errors.As(err, &remote) {
		return remote.StatusCode
	}
	return 0
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
