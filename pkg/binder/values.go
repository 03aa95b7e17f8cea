package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"slices"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

// Query binds URL query parameters. A parameter given once becomes a string,
// a repeated parameter becomes a list of strings. Keys are sorted so the
// result does not depend on map order.
func Query() Bind {
	return func(r *http.Request) (payload.Value, error) {
		return fromValues(r.URL.Query()), nil
	}
}

// Form binds application/x-www-form-urlencoded and multipart/form-data
// values. Uploaded files are ignored. Requests with another media type are
// reported as not applicable so Form can be chained with JSON.
func Form() Bind {
	return func(r *http.Request) (payload.Value, error) {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return payload.Null(), ErrBinderNotApplicable
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return payload.Null(), fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return payload.Null(), formError(err)
			}
			return fromValues(r.PostForm), nil
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return payload.Null(), formError(err)
			}
			return fromValues(r.MultipartForm.Value), nil
		default:
			return payload.Null(), ErrBinderNotApplicable
		}
	}
}

func formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: max %d bytes", ErrRequestTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
}

// Path binds the named router parameters using extractor, for example
// chi.URLParam. Empty parameters are omitted.
func Path(extractor func(r *http.Request, name string) string, names ...string) Bind {
	return func(r *http.Request) (payload.Value, error) {
		if extractor == nil {
			return payload.Null(), fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		members := make([]payload.Member, 0, len(names))
		for _, name := range names {
			if v := extractor(r, name); v != "" {
				members = append(members, payload.Field(name, payload.String(v)))
			}
		}
		return payload.Object(members...), nil
	}
}

func fromValues(values map[string][]string) payload.Value {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	members := make([]payload.Member, 0, len(keys))
	for _, k := range keys {
		vs := values[k]
		switch len(vs) {
		case 0:
			continue
		case 1:
			members = append(members, payload.Field(k, payload.String(vs[0])))
		default:
			items := make([]payload.Value, len(vs))
			for i, s := range vs {
				items[i] = payload.String(s)
			}
			members = append(members, payload.Field(k, payload.List(items...)))
		}
	}
	return payload.Object(members...)
}
