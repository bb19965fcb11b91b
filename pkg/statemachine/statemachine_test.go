package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/statemachine"
)

type state string
type event string

const (
	draft     state = "draft"
	review    state = "review"
	published state = "published"
	rejected  state = "rejected"

	submit  event = "submit"
	approve event = "approve"
	reject  event = "reject"
)

func TestMachine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("basic transitions and reset", func(t *testing.T) {
		t.Parallel()
		m := statemachine.NewBuilder[state, event](draft).
			From(draft).When(submit).To(review).Add().
			From(review).When(approve).To(published).Add().
			MustBuild()

		assert.Equal(t, draft, m.Current())
		assert.True(t, m.CanFire(ctx, submit, nil))
		assert.False(t, m.CanFire(ctx, approve, nil))

		require.NoError(t, m.Fire(ctx, submit, nil))
		require.NoError(t, m.Fire(ctx, approve, nil))
		assert.Equal(t, published, m.Current())

		m.Reset()
		assert.Equal(t, draft, m.Current())
	})

	t.Run("missing transition", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New[state, event](draft)

		err := m.Fire(ctx, approve, nil)
		require.ErrorIs(t, err, statemachine.ErrNoTransition)
		var terr *statemachine.TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "draft", terr.State)
		assert.Equal(t, "approve", terr.Event)
		assert.Equal(t, draft, m.Current())
	})

	t.Run("guards pick the first passing transition", func(t *testing.T) {
		t.Parallel()
		long := func(_ context.Context, _ state, _ event, data any) bool {
			s, _ := data.(string)
			return len(s) >= 5
		}
		m := statemachine.NewBuilder[state, event](review).
			From(review).When(approve).To(published).WithGuard(long).Add().
			From(review).When(approve).To(rejected).Add().
			MustBuild()

		require.NoError(t, m.Fire(ctx, approve, "ok"))
		assert.Equal(t, rejected, m.Current())

		m.Reset()
		require.NoError(t, m.Fire(ctx, approve, "long enough"))
		assert.Equal(t, published, m.Current())
	})

	t.Run("guards reject", func(t *testing.T) {
		t.Parallel()
		never := func(context.Context, state, event, any) bool { return false }
		m := statemachine.NewBuilder[state, event](draft).
			From(draft).When(submit).To(review).WithGuard(never).Add().
			MustBuild()

		assert.False(t, m.CanFire(ctx, submit, nil))
		assert.ErrorIs(t, m.Fire(ctx, submit, nil), statemachine.ErrRejected)
		assert.Equal(t, draft, m.Current())
	})

	t.Run("actions run in order and can veto", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		var calls []string
		m := statemachine.NewBuilder[state, event](draft).
			From(draft).When(submit).To(review).
			WithAction(func(_ context.Context, from, to state, _ event, _ any) error {
				calls = append(calls, string(from)+">"+string(to))
				return nil
			}).
			WithAction(func(context.Context, state, state, event, any) error {
				calls = append(calls, "second")
				return nil
			}).Add().
			From(review).When(reject).To(rejected).
			WithAction(func(context.Context, state, state, event, any) error { return boom }).Add().
			MustBuild()

		require.NoError(t, m.Fire(ctx, submit, nil))
		assert.Equal(t, []string{"draft>review", "second"}, calls)

		assert.ErrorIs(t, m.Fire(ctx, reject, nil), boom)
		assert.Equal(t, review, m.Current())
	})

	t.Run("observers may call back into the machine", func(t *testing.T) {
		t.Parallel()
		var seen []state
		var m *statemachine.Machine[state, event]
		m = statemachine.NewBuilder[state, event](draft).
			From(draft).When(submit).To(review).Add().
			Observe(func(from, to state, ev event) {
				seen = append(seen, from, to, m.Current())
			}).
			MustBuild()

		require.NoError(t, m.Fire(ctx, submit, nil))
		assert.Equal(t, []state{draft, review, review}, seen)

		m.Reset()
		assert.Len(t, seen, 3)
	})

	t.Run("one of many concurrent fires wins", func(t *testing.T) {
		t.Parallel()
		m := statemachine.NewBuilder[state, event](draft).
			From(draft).When(submit).To(review).Add().
			MustBuild()

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			won int
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if m.Fire(ctx, submit, nil) == nil {
					mu.Lock()
					won++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, won)
	})
}

func TestBuilder_Incomplete(t *testing.T) {
	t.Parallel()

	_, err := statemachine.NewBuilder[state, event](draft).
		From(draft).When(submit).To(review).Add().
		From(review).To(published).Add().
		Build()
	require.ErrorIs(t, err, statemachine.ErrIncomplete)
	assert.Contains(t, err.Error(), "transition 2")

	assert.Panics(t, func() {
		statemachine.NewBuilder[state, event](draft).When(submit).Add().MustBuild()
	})
}
