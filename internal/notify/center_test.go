package notify

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabava/dashboard-go/internal/model"
)

type memNotificationStore struct {
	mu     sync.Mutex
	items  []model.Notification
	writes int
}

func (s *memNotificationStore) Read(ctx context.Context) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *memNotificationStore) Write(ctx context.Context, items []model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]model.Notification(nil), items...)
	s.writes++
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (b *recordingBroadcaster) BroadcastNotification(n model.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, n)
}

func partnerNotification(message string) model.Notification {
	return model.Notification{
		Type:      model.NotificationTypePartner,
		Title:     "Partner approvals pending",
		Message:   message,
		Timestamp: time.Now(),
		Priority:  model.PriorityHigh,
	}
}

func TestIngestDedup(t *testing.T) {
	ctx := context.Background()

	t.Run("identical type and message across polls stores one notification", func(t *testing.T) {
		store := &memNotificationStore{}
		c := NewCenter(store, nil)

		added := c.Ingest(ctx, []model.Notification{partnerNotification("3 partner(s) awaiting approval")})
		assert.Equal(t, 1, added)
		c.MarkChecked()

		added = c.Ingest(ctx, []model.Notification{partnerNotification("3 partner(s) awaiting approval")})
		assert.Zero(t, added)

		assert.Len(t, c.List(), 1)
	})

	t.Run("changed message produces a new notification", func(t *testing.T) {
		c := NewCenter(&memNotificationStore{}, nil)

		c.Ingest(ctx, []model.Notification{partnerNotification("3 partner(s) awaiting approval")})
		c.MarkChecked()
		added := c.Ingest(ctx, []model.Notification{partnerNotification("5 partner(s) awaiting approval")})

		assert.Equal(t, 1, added)
		assert.Len(t, c.List(), 2)
	})

	t.Run("candidates not newer than the last poll are dropped", func(t *testing.T) {
		c := NewCenter(&memNotificationStore{}, nil)
		c.MarkChecked()

		stale := partnerNotification("old news")
		stale.Timestamp = time.Now().Add(-time.Minute)

		assert.Zero(t, c.Ingest(ctx, []model.Notification{stale}))
		assert.Empty(t, c.List())
	})
}

func TestCapAndOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("feed is capped at 50 newest-first", func(t *testing.T) {
		c := NewCenter(&memNotificationStore{}, nil)

		for i := 0; i < 60; i++ {
			c.Add(ctx, model.Notification{
				Type:      model.NotificationTypeSystem,
				Message:   fmt.Sprintf("event %d", i),
				Timestamp: time.Now(),
			})
		}

		items := c.List()
		require.Len(t, items, 50)
		assert.Equal(t, "event 59", items[0].Message)
		assert.Equal(t, "event 10", items[49].Message)
	})
}

func TestReadStateOperations(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Center, *memNotificationStore, []model.Notification) {
		t.Helper()
		store := &memNotificationStore{}
		c := NewCenter(store, nil)
		c.Add(ctx,
			model.Notification{Type: model.NotificationTypePartner, Message: "first"},
			model.Notification{Type: model.NotificationTypeRedemption, Message: "second"},
		)
		return c, store, c.List()
	}

	t.Run("mark one read", func(t *testing.T) {
		c, store, items := seed(t)

		require.True(t, c.MarkRead(ctx, items[0].ID))
		assert.Equal(t, 1, c.UnreadCount())
		assert.True(t, store.items[0].Read)
	})

	t.Run("mark read on unknown id reports false", func(t *testing.T) {
		c, _, _ := seed(t)
		assert.False(t, c.MarkRead(ctx, "missing"))
	})

	t.Run("mark all read", func(t *testing.T) {
		c, _, _ := seed(t)
		c.MarkAllRead(ctx)
		assert.Zero(t, c.UnreadCount())
	})

	t.Run("delete removes one", func(t *testing.T) {
		c, _, items := seed(t)
		require.True(t, c.Delete(ctx, items[1].ID))
		assert.Len(t, c.List(), 1)
	})

	t.Run("clear empties the feed and persists", func(t *testing.T) {
		c, store, _ := seed(t)
		c.Clear(ctx)
		assert.Empty(t, c.List())
		assert.Empty(t, store.items)
	})
}

func TestBroadcastAndPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("new notifications are broadcast", func(t *testing.T) {
		b := &recordingBroadcaster{}
		c := NewCenter(&memNotificationStore{}, b)

		c.Add(ctx, partnerNotification("3 partner(s) awaiting approval"))

		require.Len(t, b.sent, 1)
		assert.Equal(t, model.PriorityHigh, b.sent[0].Priority)
		assert.NotEmpty(t, b.sent[0].ID)
	})

	t.Run("deduplicated notifications are not rebroadcast", func(t *testing.T) {
		b := &recordingBroadcaster{}
		c := NewCenter(&memNotificationStore{}, b)

		c.Add(ctx, partnerNotification("3 partner(s) awaiting approval"))
		c.Add(ctx, partnerNotification("3 partner(s) awaiting approval"))

		assert.Len(t, b.sent, 1)
	})

	t.Run("feed survives a restart through the store", func(t *testing.T) {
		store := &memNotificationStore{}
		c := NewCenter(store, nil)
		c.Add(ctx, partnerNotification("3 partner(s) awaiting approval"))

		restarted := NewCenter(store, nil)
		restarted.Load(ctx)

		require.Len(t, restarted.List(), 1)
		assert.Equal(t, "3 partner(s) awaiting approval", restarted.List()[0].Message)
	})
}
