package binder

import (
	"errors"
	"net/http"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// Bind extracts the raw payload of a request.
type Bind func(r *http.Request) (payload.Value, error)

// Chain runs binders in order and merges their results. Object results are
// merged key by key, later binders overriding earlier ones. A non-object
// result (a JSON array body, for instance) replaces whatever was collected so
// far so that validation can reject it. Binders returning
// ErrBinderNotApplicable are skipped.
func Chain(binders ...Bind) Bind {
	return func(r *http.Request) (payload.Value, error) {
		out := payload.Null()
		for _, bind := range binders {
			if bind == nil {
				continue
			}
			v, err := bind(r)
			if err != nil {
				if errors.Is(err, ErrBinderNotApplicable) {
					continue
				}
				return payload.Null(), err
			}
			out = merge(out, v)
		}
		return out, nil
	}
}

func merge(acc, next payload.Value) payload.Value {
	switch {
	case next.IsNull():
		return acc
	case acc.IsNull():
		return next
	case acc.Kind() == payload.KindObject && next.Kind() == payload.KindObject:
		return payload.Object(append(acc.Members(), next.Members()...)...)
	default:
		return next
	}
}
