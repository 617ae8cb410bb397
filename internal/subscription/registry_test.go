package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachReplacesAndClosesPrevious(t *testing.T) {
	r := New[int]("test", 2, nil)

	first := r.Attach(7)
	second := r.Attach(7)

	_, ok := <-first
	assert.False(t, ok, "previous channel must be closed when replaced")
	assert.Equal(t, 1, r.Count())

	assert.True(t, r.SendTo(7, 99))
	v, ok := <-second
	require.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestDetachClosesChannelAndIsIdempotent(t *testing.T) {
	r := New[int]("test", 2, nil)
	ch := r.Attach(1)

	r.Detach(1)
	_, ok := <-ch
	assert.False(t, ok)
	assert.False(t, r.Has(1))

	r.Detach(1) // no-op, must not panic
}

func TestSendToUnknownUserFails(t *testing.T) {
	r := New[int]("test", 2, nil)
	assert.False(t, r.SendTo(123, 1))
}

func TestBroadcastDeliversToAllAndReportsPartialFailure(t *testing.T) {
	r := New[string]("test", 1, nil)
	a := r.Attach(1)
	b := r.Attach(2)

	// Fill user 2's single-slot buffer so the next broadcast to them fails.
	require.True(t, r.SendTo(2, "prime"))

	delivered := r.Broadcast("hello")
	assert.False(t, delivered, "user 2's full buffer must cause partial failure")

	select {
	case v := <-a:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("user 1 should have received the broadcast")
	}

	assert.Equal(t, "prime", <-b)
}

func TestActualizeRemovesStaleEntriesAndReportsCount(t *testing.T) {
	r := New[int]("test", 1, nil)
	r.Attach(1)
	r.Attach(2)
	require.True(t, r.SendTo(1, 1))
	require.True(t, r.SendTo(2, 1))

	// Both buffers are now full; broadcasting fails for both and flags them stale.
	delivered := r.Broadcast(2)
	assert.False(t, delivered)

	removed := r.Actualize()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, r.Count())
}

func TestActualizeIsNoopWhenNothingStale(t *testing.T) {
	r := New[int]("test", 4, nil)
	r.Attach(1)
	assert.Equal(t, 0, r.Actualize())
	assert.Equal(t, 1, r.Count())
}

func TestSendToSurvivesConcurrentDetach(t *testing.T) {
	r := New[int]("test", 1, nil)
	r.Attach(1)

	r.mu.RLock()
	e := r.subs[1]
	r.mu.RUnlock()

	r.Detach(1) // closes e.ch out from under the entry read above

	assert.NotPanics(t, func() {
		sent, closed := trySend(e.ch, 1)
		assert.False(t, sent)
		assert.True(t, closed)
	})
	assert.False(t, r.SendTo(1, 1), "SendTo on a since-detached user must fail, not panic")
}

func TestBroadcastSurvivesConcurrentDetach(t *testing.T) {
	r := New[int]("test", 1, nil)
	a := r.Attach(1)
	r.Attach(2)

	r.mu.RLock()
	targets := make([]*entry[int], 0, len(r.subs))
	for _, e := range r.subs {
		targets = append(targets, e)
	}
	r.mu.RUnlock()

	r.Detach(2) // closes user 2's channel between the snapshot above and the send below

	assert.NotPanics(t, func() {
		for _, e := range targets {
			trySend(e.ch, 42)
		}
	})
	assert.Equal(t, 42, <-a)
}

func TestAttachSweepsStaleBeforeInserting(t *testing.T) {
	r := New[int]("test", 1, nil)
	r.Attach(1)
	require.True(t, r.SendTo(1, 1))
	r.Broadcast(2) // user 1 now flagged stale, still present

	r.Attach(2) // unrelated attach must trigger the opportunistic sweep
	assert.Equal(t, 1, r.Count())
	assert.True(t, r.Has(2))
	assert.False(t, r.Has(1))
}
