package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placepulse/notifier/internal/models"
)

func TestPoolDispatchesEnqueuedIntents(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1", PushToken: "tok"}}}
	notifs := &fakeNotificationRepo{}
	sender := &stubSender{msgID: "fcm-1"}
	pool := NewPool(NewDispatcher(users, notifs, sender), 2, 8)

	pool.Start(context.Background())
	assert.True(t, pool.Enqueue(testIntent("u1")))
	assert.True(t, pool.Enqueue(testIntent("u1")))
	pool.Stop()

	assert.Len(t, notifs.records, 2)
}

func TestPoolSurfacesDispatchFailures(t *testing.T) {
	users := &fakeUserRepo{} // recipient missing, every dispatch fails
	notifs := &fakeNotificationRepo{}
	pool := NewPool(NewDispatcher(users, notifs, &stubSender{}), 1, 8)

	pool.Start(context.Background())
	pool.Enqueue(testIntent("ghost"))
	pool.Stop()

	select {
	case err := <-pool.Failures():
		require.ErrorIs(t, err, ErrRecipientNotFound)
	case <-time.After(time.Second):
		t.Fatal("expected a failure on the channel")
	}
	assert.Empty(t, notifs.records)
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1"}}}
	notifs := &fakeNotificationRepo{}
	pool := NewPool(NewDispatcher(users, notifs, &stubSender{}), 1, 1)

	// Workers not started: the single queue slot fills, the next drops.
	assert.True(t, pool.Enqueue(testIntent("u1")))
	assert.False(t, pool.Enqueue(testIntent("u1")))

	pool.Start(context.Background())
	pool.Stop()
	assert.Len(t, notifs.records, 1)
}
