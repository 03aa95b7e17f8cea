package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
// Implementations should set headers, status code, and write body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// JSONResponse is the success envelope.
type JSONResponse struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

// encoder is implemented by responses that can serialize their body before
// anything is written, so that an encoding failure can still be reported as
// an ErrorResponse.
type encoder interface {
	encode() (Response, error)
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status  int
	body    JSONResponse
	encoded []byte
}

func (j *jsonResponse) encode() (Response, error) {
	if j.encoded != nil {
		return j, nil
	}
	b, err := json.Marshal(j.body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeResponse, err)
	}
	return &jsonResponse{status: j.status, body: j.body, encoded: append(b, '\n')}, nil
}

// Render writes status and body. Nothing is written when the body cannot be encoded.
func (j *jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	ready, err := j.encode()
	if err != nil {
		return err
	}
	out := ready.(*jsonResponse)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(out.status)
	_, err = w.Write(out.encoded)
	return err
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta adds metadata to response
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v in the success envelope.
//
// Example:
//
//	return handler.JSON(article, handler.WithJSONStatus(http.StatusCreated))
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body:   JSONResponse{Data: v},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// emptyResponse represents an empty HTTP response with only a status code
type emptyResponse struct {
	status int
}

// Render writes the status code without any body content
func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty creates an empty response with status 204 (No Content).
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus creates an empty response with a custom status code.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}
