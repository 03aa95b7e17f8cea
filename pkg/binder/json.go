package binder

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSONOption configures the JSON binder.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	maxSize int64
}

// WithMaxBodySize sets the body size limit in bytes. Non-positive values are ignored.
func WithMaxBodySize(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// JSON creates a binder for application/json bodies. An empty body binds to
// null; the validator treats that as an empty object.
func JSON(opts ...JSONOption) Bind {
	cfg := jsonConfig{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request) (payload.Value, error) {
		if err := r.Context().Err(); err != nil {
			return payload.Null(), fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
		if r.Body == nil || r.Body == http.NoBody {
			return payload.Null(), nil
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxSize+1))
		if err != nil {
			return payload.Null(), fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > cfg.maxSize {
			return payload.Null(), fmt.Errorf("%w: max %d bytes", ErrRequestTooLarge, cfg.maxSize)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return payload.Null(), nil
		}

		if err := checkJSONMediaType(r.Header.Get("Content-Type")); err != nil {
			return payload.Null(), err
		}

		v, err := payload.ParseJSON(body)
		if err != nil {
			return payload.Null(), fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
		return v, nil
	}
}

func checkJSONMediaType(contentType string) error {
	if contentType == "" {
		return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	if mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json") {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}
	return nil
}
