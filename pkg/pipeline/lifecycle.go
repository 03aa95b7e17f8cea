package pipeline

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumenpulse/apikit/pkg/statemachine"
)

// Request lifecycle states.
const (
	StateReceived         statemachine.State = "received"
	StateValidating       statemachine.State = "validating"
	StateValidationFailed statemachine.State = "validation_failed"
	StateSanitizing       statemachine.State = "sanitizing"
	StateSanitized        statemachine.State = "sanitized"
	StateHandling         statemachine.State = "handling"
	StateSucceeded        statemachine.State = "succeeded"
	StateFailed           statemachine.State = "failed"
	StateResponding       statemachine.State = "responding"
	StateNormalizing      statemachine.State = "normalizing"
	StateSent             statemachine.State = "sent"
)

// Request lifecycle events.
const (
	EventValidate  statemachine.Event = "validate"
	EventReject    statemachine.Event = "reject"
	EventAccept    statemachine.Event = "accept"
	EventSanitized statemachine.Event = "sanitized"
	EventHandle    statemachine.Event = "handle"
	EventSucceed   statemachine.Event = "succeed"
	EventFail      statemachine.Event = "fail"
	EventRespond   statemachine.Event = "respond"
	EventNormalize statemachine.Event = "normalize"
	EventSend      statemachine.Event = "send"
)

// lifecycle is shared by every request; each request walks its own Machine.
var lifecycle = statemachine.NewBuilder(StateReceived).
	Permit(StateReceived, EventValidate, StateValidating).
	Permit(StateReceived, EventFail, StateFailed).
	Permit(StateValidating, EventReject, StateValidationFailed).
	Permit(StateValidating, EventAccept, StateSanitizing).
	Permit(StateValidating, EventFail, StateFailed).
	Permit(StateValidationFailed, EventNormalize, StateNormalizing).
	Permit(StateSanitizing, EventSanitized, StateSanitized).
	Permit(StateSanitizing, EventFail, StateFailed).
	Permit(StateSanitized, EventHandle, StateHandling).
	Permit(StateHandling, EventSucceed, StateSucceeded).
	Permit(StateHandling, EventFail, StateFailed).
	Permit(StateSucceeded, EventRespond, StateResponding).
	Permit(StateFailed, EventNormalize, StateNormalizing).
	Permit(StateResponding, EventSend, StateSent).
	Permit(StateNormalizing, EventSend, StateSent).
	OnTransition(traceTransition).
	MustBuild()

// traceTransition records each state change on the active span.
func traceTransition(ctx context.Context, from statemachine.State, event statemachine.Event, to statemachine.State) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("transition", trace.WithAttributes(
		attribute.String("pipeline.from", string(from)),
		attribute.String("pipeline.event", string(event)),
		attribute.String("pipeline.to", string(to)),
	))
}

// Lifecycle exposes the request transition table, mainly for documentation
// and tests.
func Lifecycle() *statemachine.Table { return lifecycle }
