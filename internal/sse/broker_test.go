package sse

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/zabava/dashboard-go/internal/redis"
)

// newTestBroker wires the broker to a redis address nothing listens on. The
// pubsub loop retries in the background without delivering, which is enough
// for the client bookkeeping paths under test.
func newTestBroker(t *testing.T) *Broker {
	t.Helper()
	client := &redisclient.Client{Client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})}
	t.Cleanup(func() { client.Close() })

	b := NewBroker(client)
	t.Cleanup(b.Close)
	return b
}

func TestBrokerClients(t *testing.T) {
	t.Run("subscribe and unsubscribe update the client count", func(t *testing.T) {
		b := newTestBroker(t)
		assert.Zero(t, b.ClientCount())

		first := b.Subscribe()
		second := b.Subscribe()
		assert.Equal(t, 2, b.ClientCount())

		b.Unsubscribe(first)
		assert.Equal(t, 1, b.ClientCount())

		// double unsubscribe is a no-op
		b.Unsubscribe(first)
		assert.Equal(t, 1, b.ClientCount())

		b.Unsubscribe(second)
		assert.Zero(t, b.ClientCount())
	})

	t.Run("broadcast reaches every subscriber", func(t *testing.T) {
		b := newTestBroker(t)
		first := b.Subscribe()
		second := b.Subscribe()

		b.broadcast(Event{Type: "notification", Data: []byte(`{"id":"n1"}`)})

		for _, client := range []*Client{first, second} {
			select {
			case event := <-client.Events:
				assert.Equal(t, "notification", event.Type)
			case <-time.After(time.Second):
				t.Fatal("subscriber did not receive the event")
			}
		}
	})

	t.Run("close releases all clients", func(t *testing.T) {
		b := newTestBroker(t)
		client := b.Subscribe()
		require.Equal(t, 1, b.ClientCount())

		b.Close()

		select {
		case <-client.Done:
		case <-time.After(time.Second):
			t.Fatal("client was not released on close")
		}
		assert.Zero(t, b.ClientCount())
	})
}
