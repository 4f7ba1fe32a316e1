// Package middleware holds the HTTP middleware the server installs by
// default: request IDs, permissive CORS, and request logging.
package middleware

import (
	"net/http"

	"github.com/easydb/easydb/pkg/httputil"
)

// Chain applies middleware to a handler in the order provided; the first
// middleware is the outermost wrapper.
func Chain(h http.Handler, middlewares ...httputil.Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
