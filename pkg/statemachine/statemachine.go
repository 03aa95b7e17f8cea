package statemachine

import (
	"context"
	"fmt"
	"slices"
)

// State names a machine state.
type State string

// Event names something that moves a machine between states.
type Event string

// Observer is notified after a successful transition.
type Observer func(ctx context.Context, from State, event Event, to State)

// Table is an immutable set of transitions with an initial state.
type Table struct {
	initial     State
	transitions map[State]map[Event]State
	observers   []Observer
}

// Initial returns the state new machines start in.
func (t *Table) Initial() State { return t.initial }

// Next returns the target of event from state.
func (t *Table) Next(from State, event Event) (State, bool) {
	to, ok := t.transitions[from][event]
	return to, ok
}

// Events lists the events accepted in state, sorted by name.
func (t *Table) Events(state State) []Event {
	events := make([]Event, 0, len(t.transitions[state]))
	for e := range t.transitions[state] {
		events = append(events, e)
	}
	slices.Sort(events)
	return events
}

// IsTerminal reports whether state has no outgoing transitions.
func (t *Table) IsTerminal(state State) bool {
	return len(t.transitions[state]) == 0
}

// New creates a Machine positioned at the initial state.
func (t *Table) New() *Machine {
	return &Machine{
		table:   t,
		current: t.initial,
		history: []State{t.initial},
	}
}

// Builder collects transitions for a Table.
type Builder struct {
	initial     State
	transitions map[State]map[Event]State
	observers   []Observer
	err         error
}

// NewBuilder starts a table whose machines begin in initial.
func NewBuilder(initial State) *Builder {
	b := &Builder{
		initial:     initial,
		transitions: make(map[State]map[Event]State),
	}
	if initial == "" {
		b.err = ErrInvalidInitial
	}
	return b
}

// Permit allows event to move a machine from one state to another. The first
// error encountered is reported by Build.
func (b *Builder) Permit(from State, event Event, to State) *Builder {
	if b.err != nil {
		return b
	}
	if from == "" || to == "" || event == "" {
		b.err = ErrInvalidTransition
		return b
	}
	if existing, ok := b.transitions[from][event]; ok && existing != to {
		b.err = fmt.Errorf("%w: %s --%s--> %s and %s", ErrConflictingRoute, from, event, existing, to)
		return b
	}
	if b.transitions[from] == nil {
		b.transitions[from] = make(map[Event]State)
	}
	b.transitions[from][event] = to
	return b
}

// OnTransition registers an observer. Nil observers are ignored.
func (b *Builder) OnTransition(o Observer) *Builder {
	if o != nil {
		b.observers = append(b.observers, o)
	}
	return b
}

// Build returns the immutable table.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	transitions := make(map[State]map[Event]State, len(b.transitions))
	for from, events := range b.transitions {
		inner := make(map[Event]State, len(events))
		for e, to := range events {
			inner[e] = to
		}
		transitions[from] = inner
	}
	return &Table{
		initial:     b.initial,
		transitions: transitions,
		observers:   slices.Clone(b.observers),
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// Machine tracks one walk through a Table. It is not safe for concurrent use.
type Machine struct {
	table   *Table
	current State
	history []State
}

func (m *Machine) Current() State { return m.current }

// History returns every state visited, starting with the initial one.
func (m *Machine) History() []State { return slices.Clone(m.history) }

// CanFire reports whether event is accepted in the current state.
func (m *Machine) CanFire(event Event) bool {
	_, ok := m.table.Next(m.current, event)
	return ok
}

// Fire moves the machine along event. The state is unchanged on error.
func (m *Machine) Fire(ctx context.Context, event Event) error {
	if m.table == nil {
		return ErrNilTable
	}
	to, ok := m.table.Next(m.current, event)
	if !ok {
		return NewErrNoTransitionAvailable(m.current, event)
	}
	from := m.current
	m.current = to
	m.history = append(m.history, to)
	for _, o := range m.table.observers {
		o(ctx, from, event, to)
	}
	return nil
}

// Done reports whether the machine reached a terminal state.
func (m *Machine) Done() bool { return m.table.IsTerminal(m.current) }

// Reset returns the machine to the initial state and clears its history.
func (m *Machine) Reset() {
	m.current = m.table.initial
	m.history = []State{m.table.initial}
}
