package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mercator-hq/courier/pkg/proxy/types"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer.
// It sets the appropriate content-type header and handles marshaling errors.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteSuccess writes {"success":true,"data":...} with status 200.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSONResponse(w, http.StatusOK, types.NewSuccessResponse(data))
}

// WriteFailure writes a failure envelope with the status it carries.
func WriteFailure(w http.ResponseWriter, resp *types.FailureResponse) error {
	return WriteJSONResponse(w, resp.HTTPStatusCode(), resp)
}

// WriteNotFound writes the fixed {"success":false,"error":"Not Found"} body.
func WriteNotFound(w http.ResponseWriter) error {
	return WriteJSONResponse(w, http.StatusNotFound, types.NewNotFoundResponse())
}
