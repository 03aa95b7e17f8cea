package pipeline

import (
	"github.com/lumenpulse/apikit/core"
	"github.com/lumenpulse/apikit/pkg/payload"
	"github.com/lumenpulse/apikit/pkg/statemachine"
)

// Request is the per-invocation state of one run through a Pipeline.
// Create a fresh Request for every incoming call; it must not be shared
// between goroutines or reused.
type Request struct {
	path    string
	raw     payload.Value
	machine *statemachine.Machine
}

// NewRequest prepares the state for one invocation. path is echoed into any
// error response; raw is the decoded, unvalidated payload.
func NewRequest(path string, raw payload.Value) *Request {
	return &Request{
		path:    path,
		raw:     raw,
		machine: lifecycle.New(),
	}
}

func (r *Request) Path() string { return r.path }

// Raw returns the payload as received.
func (r *Request) Raw() payload.Value { return r.raw }

// State returns the current lifecycle state.
func (r *Request) State() statemachine.State { return r.machine.Current() }

// Outcome is the result of a run. Exactly one of Result and Err is meaningful:
// Err is non-nil when the request failed at any stage.
type Outcome struct {
	// Payload is the validated and sanitized payload. It is the zero Value
	// when validation or sanitization failed.
	Payload payload.Value
	Result  any
	Err     *core.ErrorResponse
	// Trail lists the lifecycle states the request went through.
	Trail []statemachine.State
}

// Failed reports whether the run produced an error response.
func (o Outcome) Failed() bool { return o.Err != nil }

// StatusCode returns the error status, or 0 on success.
func (o Outcome) StatusCode() int {
	if o.Err == nil {
		return 0
	}
	return o.Err.StatusCode
}
