package core

import (
	"fmt"
	"runtime/debug"
)

// Fault wraps a value recovered from a panic together with the stack of the
// panicking goroutine.
type Fault struct {
	Value any
	Stack []byte
}

// NewFault captures the current stack. Call it from the deferred function
// that recovered v.
func NewFault(v any) *Fault {
	return &Fault{Value: v, Stack: debug.Stack()}
}

func (f *Fault) Error() string {
	if err, ok := f.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("panic: %v", f.Value)
}

// Unwrap exposes the recovered value when it is an error.
func (f *Fault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

// IsError reports whether the recovered value was an error.
func (f *Fault) IsError() bool {
	_, ok := f.Value.(error)
	return ok
}
