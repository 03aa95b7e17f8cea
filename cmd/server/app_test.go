package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpulse/apikit/pkg/environment"
	"github.com/lumenpulse/apikit/pkg/logger"
	"github.com/lumenpulse/apikit/pkg/requestid"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	a, err := newApp(Config{
		Env:           environment.Test,
		MaxBodyBytes:  4 << 10,
		SanitizerMode: "deep",
	}, logger.Noop())
	require.NoError(t, err)
	return a.routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w, decoded
}

func TestLoadSchemas(t *testing.T) {
	t.Parallel()

	s, err := loadSchemas()
	require.NoError(t, err)
	assert.NotEmpty(t, s.register.Fields)
	assert.NotEmpty(t, s.metadata.Fields)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	h := newTestServer(t)

	w, body := do(t, h, http.MethodPost, "/auth/register",
		`{"email": "  Ann@Example.COM ", "password": "s3cret-pass", "displayName": " Ann ", "acceptTerms": true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := body["data"].(map[string]any)
	assert.Equal(t, "ann@example.com", data["email"])
	assert.Equal(t, "Ann", data["displayName"])
	assert.NotContains(t, data, "password")
	assert.NotEmpty(t, w.Header().Get(requestid.Header))

	w, body = do(t, h, http.MethodPost, "/auth/register",
		`{"email": "ann@example.com", "password": "another-pass", "acceptTerms": true}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HttpError", body["error"])
	assert.Equal(t, "email already registered", body["message"])

	w, body = do(t, h, http.MethodPost, "/auth/register",
		`{"email": "bad", "password": "short", "acceptTerms": false, "isAdmin": true}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", body["error"])
	assert.Equal(t, []any{
		"email: must be an email",
		"password: must be longer than or equal to 8 characters",
		"acceptTerms: must be accepted",
		"isAdmin: unexpected property",
	}, body["message"])
	assert.Equal(t, "/auth/register", body["path"])
}

func TestArticles(t *testing.T) {
	t.Parallel()
	h := newTestServer(t)

	w, body := do(t, h, http.MethodPost, "/articles", `{
		"title": "  Hello <World>  ",
		"body": "A body that is long enough",
		"author": {"name": "Ann", "email": "ANN@example.com"},
		"tags": [" Go ", "web"]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := body["data"].(map[string]any)
	assert.Equal(t, "Hello &lt;World&gt;", created["title"])
	assert.Equal(t, "draft", created["status"])
	assert.Equal(t, []any{"go", "web"}, created["tags"])
	id := created["id"].(string)

	w, body = do(t, h, http.MethodGet, "/articles/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, body["data"].(map[string]any)["id"])

	missing := uuid.NewString()
	w, body = do(t, h, http.MethodGet, "/articles/"+missing, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "article "+missing+" not found", body["message"])

	w, body = do(t, h, http.MethodGet, "/articles/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"id: must be a UUID"}, body["message"])

	w, body = do(t, h, http.MethodPost, "/articles", `{"title": "Hi", "body": "short", "status": "gone",
		"author": {"email": "x"}, "tags": ["a", "b", "c", "d", "e", "f"]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{
		"title: must be between 3 and 120 characters",
		"body: must be longer than or equal to 10 characters",
		"status: must be one of the following values: draft, published",
		"author.name: is required",
		"author.email: must be an email",
		"tags: must contain no more than 5 elements",
	}, body["message"])
}

func TestSearch(t *testing.T) {
	t.Parallel()
	h := newTestServer(t)

	for _, title := range []string{"Go generics", "Learning GO", "Rust"} {
		w, _ := do(t, h, http.MethodPost, "/articles",
			`{"title": "`+title+`", "body": "A body that is long enough", "author": {"name": "A", "email": "a@b.co"}, "tags": ["go"]}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := do(t, h, http.MethodGet, "/search?q=GO&limit=1&tags=GO", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, body["data"], 1)
	assert.Equal(t, map[string]any{"query": "go", "page": float64(1), "limit": float64(1), "total": float64(2)}, body["meta"])

	w, body = do(t, h, http.MethodGet, "/search?q=go&page=0&limit=500", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"page: must be a positive number", "limit: must not be greater than 100"}, body["message"])
}

func TestMetadata(t *testing.T) {
	t.Parallel()
	h := newTestServer(t)
	resource := uuid.NewString()

	w, body := do(t, h, http.MethodPost, "/metadata",
		`{"resource": "`+resource+`", "entries": [{"key": "color", "value": "<red>"}, {"key": "size", "value": 3}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]any{
		"resource": resource,
		"metadata": map[string]any{"color": "&lt;red&gt;", "size": float64(3)},
	}, body["data"])

	w, body = do(t, h, http.MethodPost, "/metadata",
		`{"resource": "`+resource+`", "entries": [{"key": "Bad Key", "value": 1}, {"value": 2}, "x"]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{
		"entries.0.key: must match /^[a-z][a-z0-9_]*$/ regular expression",
		"entries.1.key: is required",
		"entries.2: must be an object",
	}, body["message"])
}

func TestTransportFailures(t *testing.T) {
	t.Parallel()
	h := newTestServer(t)

	w, body := do(t, h, http.MethodPost, "/articles", `{"title": `)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "malformed JSON request body", body["message"])

	w, body = do(t, h, http.MethodPost, "/articles", `{"body": "`+strings.Repeat("x", 5<<10)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "HttpError", body["error"])

	w, body = do(t, h, http.MethodGet, "/nowhere", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Cannot GET /nowhere", body["message"])

	w, body = do(t, h, http.MethodDelete, "/articles", "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "HttpError", body["error"])

	w, body = do(t, h, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])
}
