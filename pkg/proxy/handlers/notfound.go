package handlers

import (
	"net/http"

	"mercator-hq/courier/pkg/proxy"
)

// NotFound answers every unrouted path and method with
// {"success":false,"error":"Not Found"} and status 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	_ = proxy.WriteNotFound(w)
}
