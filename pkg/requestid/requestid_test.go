package requestid_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpulse/apikit/pkg/logger"
	"github.com/lumenpulse/apikit/pkg/requestid"
)

func serve(h http.Handler, header string) (*httptest.ResponseRecorder, string) {
	var seen string
	wrapped := h
	if wrapped == nil {
		wrapped = requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestid.FromContext(r.Context())
		}))
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid when missing", func(t *testing.T) {
		t.Parallel()
		rec, seen := serve(nil, "")
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses valid client id", func(t *testing.T) {
		t.Parallel()
		rec, seen := serve(nil, "client-id_123")
		assert.Equal(t, "client-id_123", seen)
		assert.Equal(t, "client-id_123", rec.Header().Get(requestid.Header))
	})

	for _, invalid := range []string{"test@request#id", "test request id", "a/b", strings.Repeat("a", 129)} {
		t.Run("replaces "+invalid[:min(len(invalid), 16)], func(t *testing.T) {
			t.Parallel()
			_, seen := serve(nil, invalid)
			assert.NotEqual(t, invalid, seen)
			assert.NotEmpty(t, seen)
		})
	}
}

func TestNewWithGenerator(t *testing.T) {
	t.Parallel()

	var seen string
	h := requestid.New(requestid.WithGenerator(func() string { return "fixed" }))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestid.FromContext(r.Context())
		}))
	rec, _ := serve(h, "")
	assert.Equal(t, "fixed", seen)
	assert.Equal(t, "fixed", rec.Header().Get(requestid.Header))
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "abc", requestid.FromContext(requestid.WithContext(context.Background(), "abc")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-1"), "hello")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)

	buf.Reset()
	log.LogAttrs(context.Background(), slog.LevelInfo, "no id")
	assert.NotContains(t, buf.String(), "request_id")
}
