package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lumenpulse/apikit/core"
)

// Check reports whether a dependency is ready.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Health returns a probe handler. Without checks it is a liveness probe and
// always answers {"status":"alive"}. With checks it answers {"status":"ready"}
// when all pass, and a 503 ErrorResponse naming the first failing check
// otherwise. The check error itself is logged by n, not sent.
func Health(n *core.Normalizer, checks ...Check) http.HandlerFunc {
	if n == nil {
		n = core.NewNormalizer()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		status := "alive"
		if len(checks) > 0 {
			status = "ready"
		}
		for _, c := range checks {
			if err := c.Fn(r.Context()); err != nil {
				failure := fmt.Errorf("%w: %w", core.ErrServiceUnavailable.WithMessage(c.Name+" is not ready"), err)
				resp := n.Normalize(r.Context(), failure, r.URL.Path)
				_ = resp.Render(w, r)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
