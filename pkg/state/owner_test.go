package state

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"backendprobe/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startOwner(t *testing.T) (*Owner, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	owner := New()
	go owner.Run(ctx)

	t.Cleanup(func() {
		cancel()
		<-owner.Done()
	})
	return owner, cancel
}

func TestOwnerStartsWithDefault(t *testing.T) {
	owner, _ := startOwner(t)

	current, err := owner.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConnectionState(), current)
	assert.False(t, current.IsConnected)
	assert.Equal(t, "Not tested", current.StatusMessage)
}

func TestOwnerApplyAndReset(t *testing.T) {
	owner, _ := startOwner(t)
	ctx := context.Background()
	connected := models.ConnectionState{IsConnected: true, StatusMessage: "Connected! Status: ok"}

	require.NoError(t, owner.Apply(ctx, connected))
	current, err := owner.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, connected, current)

	require.NoError(t, owner.Reset(ctx))
	current, err = owner.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConnectionState(), current)
}

func TestOwnerConcurrentApplyLastWriteWins(t *testing.T) {
	owner, _ := startOwner(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, owner.Apply(ctx, models.ConnectionState{StatusMessage: fmt.Sprint(n)}))
		}(i)
	}
	wg.Wait()

	final := models.ConnectionState{IsConnected: true, StatusMessage: "final"}
	require.NoError(t, owner.Apply(ctx, final))

	current, err := owner.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, final, current)
}

func TestOwnerSubscribeSeesCurrentThenUpdates(t *testing.T) {
	owner, _ := startOwner(t)
	ctx := context.Background()

	updates, err := owner.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConnectionState(), <-updates)

	next := models.ConnectionState{StatusMessage: "Connection failed", Kind: models.KindHTTP}
	require.NoError(t, owner.Apply(ctx, next))
	assert.Equal(t, next, <-updates)
}

func TestOwnerSlowSubscriberGetsLatest(t *testing.T) {
	owner, _ := startOwner(t)
	ctx := context.Background()

	updates, err := owner.Subscribe(ctx)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, owner.Apply(ctx, models.ConnectionState{StatusMessage: fmt.Sprint(i)}))
	}
	// Snapshot round-trips through the owner, so all applies have been handled.
	_, err = owner.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, "4", (<-updates).StatusMessage)
	assert.Empty(t, updates)
}

func TestOwnerStopped(t *testing.T) {
	owner, cancel := startOwner(t)
	ctx := context.Background()

	updates, err := owner.Subscribe(ctx)
	require.NoError(t, err)
	<-updates

	cancel()
	select {
	case <-owner.Done():
	case <-time.After(time.Second):
		t.Fatal("owner did not stop")
	}

	_, open := <-updates
	assert.False(t, open)
	assert.ErrorIs(t, owner.Apply(ctx, models.ConnectionState{}), ErrStopped)
	_, err = owner.Snapshot(ctx)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestOwnerContextCanceled(t *testing.T) {
	owner := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, owner.Apply(ctx, models.ConnectionState{}), context.Canceled)
}

func subscriberCount(t *testing.T, owner *Owner) int {
	t.Helper()

	reply := make(chan int, 1)
	require.NoError(t, owner.do(context.Background(), func(s *owned) {
		reply <- len(s.subscribers)
	}))
	return <-reply
}

func TestOwnerUnsubscribe(t *testing.T) {
	owner, _ := startOwner(t)
	ctx := context.Background()

	kept, err := owner.Subscribe(ctx)
	require.NoError(t, err)
	dropped, err := owner.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, subscriberCount(t, owner))

	require.NoError(t, owner.Unsubscribe(ctx, dropped))
	assert.Equal(t, 1, subscriberCount(t, owner))

	<-dropped
	_, ok := <-dropped
	assert.False(t, ok, "unsubscribed channel must be closed")

	next := models.ConnectionState{IsConnected: true, StatusMessage: "Connected! Status: ok"}
	require.NoError(t, owner.Apply(ctx, next))
	// The buffered initial value is replaced by the latest one.
	assert.Equal(t, next, <-kept)

	require.NoError(t, owner.Unsubscribe(ctx, dropped), "second unsubscribe is a no-op")
	assert.Equal(t, 1, subscriberCount(t, owner))
}

func TestOwnerRepeatedSubscribeUnsubscribeDoesNotGrow(t *testing.T) {
	owner, _ := startOwner(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		updates, err := owner.Subscribe(ctx)
		require.NoError(t, err)
		require.NoError(t, owner.Unsubscribe(ctx, updates))
	}

	assert.Equal(t, 0, subscriberCount(t, owner))
}
