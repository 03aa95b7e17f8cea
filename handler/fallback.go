package handler

import (
	"fmt"
	"net/http"

	"github.com/lumenpulse/apikit/core"
)

// NotFound renders a 404 ErrorResponse naming the unmatched route,
// e.g. "Cannot GET /missing".
func NotFound(n *core.Normalizer) http.HandlerFunc {
	n = orDefault(n)
	return func(w http.ResponseWriter, r *http.Request) {
		failure := core.ErrNotFound.WithMessage(fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
		resp := n.Normalize(r.Context(), failure, r.URL.Path)
		_ = resp.Render(w, r)
	}
}

// MethodNotAllowed renders a 405 ErrorResponse.
func MethodNotAllowed(n *core.Normalizer) http.HandlerFunc {
	return Failure(n, core.ErrMethodNotAllowed)
}

// Failure renders failure through n for every request. It is used for router
// fallbacks and middleware that reject requests before any handler runs.
func Failure(n *core.Normalizer, failure any) http.HandlerFunc {
	n = orDefault(n)
	return func(w http.ResponseWriter, r *http.Request) {
		resp := n.Normalize(r.Context(), failure, r.URL.Path)
		_ = resp.Render(w, r)
	}
}

func orDefault(n *core.Normalizer) *core.Normalizer {
	if n == nil {
		return core.NewNormalizer()
	}
	return n
}
