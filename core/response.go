package core

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// TimestampLayout is the ISO-8601 layout used for ErrorResponse.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrorResponse is the only shape a failed request produces on the wire.
type ErrorResponse struct {
	StatusCode int     `json:"statusCode"`
	Message    Message `json:"message"`
	Error      string  `json:"error"`
	Timestamp  string  `json:"timestamp"`
	Path       string  `json:"path"`
}

// Kind returns the ErrorKind named by the Error field.
func (r ErrorResponse) Kind() ErrorKind {
	return ParseErrorKind(r.Error)
}

// LogValue implements slog.LogValuer.
func (r ErrorResponse) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("statusCode", r.StatusCode),
		slog.Any("message", r.Message.Strings()),
		slog.String("error", r.Error),
		slog.String("timestamp", r.Timestamp),
		slog.String("path", r.Path),
	)
}

// Render writes r as JSON with its status code.
func (r ErrorResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.StatusCode)
	return json.NewEncoder(w).Encode(r)
}
