package statemachine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpulse/apikit/pkg/statemachine"
)

const (
	Draft     statemachine.State = "draft"
	InReview  statemachine.State = "in_review"
	Published statemachine.State = "published"
	Rejected  statemachine.State = "rejected"

	Submit  statemachine.Event = "submit"
	Approve statemachine.Event = "approve"
	Reject  statemachine.Event = "reject"
)

func reviewTable(t *testing.T, observers ...statemachine.Observer) *statemachine.Table {
	t.Helper()
	b := statemachine.NewBuilder(Draft).
		Permit(Draft, Submit, InReview).
		Permit(InReview, Approve, Published).
		Permit(InReview, Reject, Rejected)
	for _, o := range observers {
		b.OnTransition(o)
	}
	table, err := b.Build()
	require.NoError(t, err)
	return table
}

func TestMachine_Fire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := reviewTable(t).New()

	assert.Equal(t, Draft, m.Current())
	assert.True(t, m.CanFire(Submit))
	assert.False(t, m.CanFire(Approve))

	require.NoError(t, m.Fire(ctx, Submit))
	require.NoError(t, m.Fire(ctx, Approve))
	assert.Equal(t, Published, m.Current())
	assert.True(t, m.Done())
	assert.Equal(t, []statemachine.State{Draft, InReview, Published}, m.History())

	err := m.Fire(ctx, Reject)
	require.Error(t, err)
	assert.True(t, statemachine.IsNoTransitionAvailableError(err))
	assert.Equal(t, "no transition available from state 'published' for event 'reject'", err.Error())
	assert.Equal(t, Published, m.Current(), "state unchanged on error")

	m.Reset()
	assert.Equal(t, Draft, m.Current())
	assert.Equal(t, []statemachine.State{Draft}, m.History())
}

func TestMachine_HistoryIsCopy(t *testing.T) {
	t.Parallel()

	m := reviewTable(t).New()
	h := m.History()
	h[0] = "tampered"
	assert.Equal(t, Draft, m.History()[0])
}

func TestTable_Queries(t *testing.T) {
	t.Parallel()

	table := reviewTable(t)
	assert.Equal(t, Draft, table.Initial())
	assert.Equal(t, []statemachine.Event{Approve, Reject}, table.Events(InReview))
	assert.Empty(t, table.Events(Published))
	assert.True(t, table.IsTerminal(Rejected))

	to, ok := table.Next(InReview, Reject)
	assert.True(t, ok)
	assert.Equal(t, Rejected, to)
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	_, err := statemachine.NewBuilder("").Build()
	assert.ErrorIs(t, err, statemachine.ErrInvalidInitial)

	_, err = statemachine.NewBuilder(Draft).Permit(Draft, "", InReview).Build()
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	_, err = statemachine.NewBuilder(Draft).
		Permit(Draft, Submit, InReview).
		Permit(Draft, Submit, Rejected).
		Build()
	assert.ErrorIs(t, err, statemachine.ErrConflictingRoute)

	_, err = statemachine.NewBuilder(Draft).
		Permit(Draft, Submit, InReview).
		Permit(Draft, Submit, InReview).
		Build()
	assert.NoError(t, err, "repeating an identical transition is allowed")

	assert.Panics(t, func() { statemachine.NewBuilder("").MustBuild() })
}

func TestObservers(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		steps []string
	)
	table := reviewTable(t, func(_ context.Context, from statemachine.State, e statemachine.Event, to statemachine.State) {
		mu.Lock()
		defer mu.Unlock()
		steps = append(steps, string(from)+">"+string(e)+">"+string(to))
	})

	m := table.New()
	require.NoError(t, m.Fire(context.Background(), Submit))
	require.Error(t, m.Fire(context.Background(), Submit))
	require.NoError(t, m.Fire(context.Background(), Reject))

	assert.Equal(t, []string{"draft>submit>in_review", "in_review>reject>rejected"}, steps)
}

func TestTable_SharedAcrossGoroutines(t *testing.T) {
	t.Parallel()

	table := reviewTable(t)
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := table.New()
			assert.NoError(t, m.Fire(context.Background(), Submit))
			if i%2 == 0 {
				assert.NoError(t, m.Fire(context.Background(), Approve))
				assert.Equal(t, Published, m.Current())
			} else {
				assert.NoError(t, m.Fire(context.Background(), Reject))
				assert.Equal(t, Rejected, m.Current())
			}
		}()
	}
	wg.Wait()
}
