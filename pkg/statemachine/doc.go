// Package statemachine provides finite state machines split into an immutable
// transition Table and cheap per-use Machine instances.
//
// A Table is built once, typically at startup, and can be shared by any number
// of goroutines. Each unit of work (an HTTP request, a job) creates its own
// Machine from the table, fires events on it and discards it; Machines are
// not safe for concurrent use and need no locking because they are never
// shared.
//
// # Usage
//
//	const (
//	    Draft     statemachine.State = "draft"
//	    Published statemachine.State = "published"
//	    Publish   statemachine.Event = "publish"
//	)
//
//	table := statemachine.NewBuilder(Draft).
//	    Permit(Draft, Publish, Published).
//	    MustBuild()
//
//	m := table.New()
//	if err := m.Fire(ctx, Publish); err != nil {
//	    // statemachine.IsNoTransitionAvailableError(err)
//	}
//
// Observers registered with Builder.OnTransition run after every successful
// transition of every Machine created from the table; they must be safe for
// concurrent use.
package statemachine
