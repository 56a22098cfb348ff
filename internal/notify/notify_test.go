package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func receive(t *testing.T, changes <-chan Change) Change {
	select {
	case change, ok := <-changes:
		require.True(t, ok, "channel closed")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestPublishSubscribe(t *testing.T) {
	_, client := setup(t)
	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := NewSubscriber(client).Subscribe(c, ENTITY_ORDERS)
	require.NoError(t, err)

	publisher := NewPublisher(client)
	require.NoError(t, publisher.Publish(c, ENTITY_ORDERS, OpUpdate, "42"))
	require.NoError(t, publisher.Publish(c, ENTITY_RESERVATIONS, OpInsert, "7"))
	require.NoError(t, publisher.Publish(c, ENTITY_ORDERS, OpInsert, "43"))

	first := receive(t, changes)
	assert.Equal(t, ENTITY_ORDERS, first.Entity)
	assert.Equal(t, OpUpdate, first.Op)
	assert.Equal(t, "42", first.ID)
	assert.False(t, first.At.IsZero())

	second := receive(t, changes)
	assert.Equal(t, "43", second.ID)
}

func TestSubscribeUndecodablePayload(t *testing.T) {
	mr, client := setup(t)
	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := NewSubscriber(client).Subscribe(c, ENTITY_RESERVATIONS)
	require.NoError(t, err)

	mr.Publish(Channel(ENTITY_RESERVATIONS), "not json")
	change := receive(t, changes)
	assert.Equal(t, ENTITY_RESERVATIONS, change.Entity)
}

func TestSubscribeClosesOnCancel(t *testing.T) {
	_, client := setup(t)
	c, cancel := context.WithCancel(context.Background())

	changes, err := NewSubscriber(client).Subscribe(c, ENTITY_ORDERS)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "nebula:orders-changes", Channel(ENTITY_ORDERS))
}
