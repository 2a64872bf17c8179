// Package notify owns the dashboard notification feed: a newest-first list
// capped at 50, deduplicated across poll cycles, persisted on every change,
// and broadcast to live SSE subscribers.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/config"
	"github.com/zabava/dashboard-go/internal/model"
)

// Store persists the feed; satisfied by store.NotificationStore.
type Store interface {
	Read(ctx context.Context) []model.Notification
	Write(ctx context.Context, items []model.Notification)
}

// Broadcaster pushes new notifications to connected dashboard clients.
// May be nil when no live channel is wired.
type Broadcaster interface {
	BroadcastNotification(n model.Notification)
}

type Center struct {
	store       Store
	broadcaster Broadcaster

	mu        sync.Mutex
	items     []model.Notification
	lastCheck time.Time
}

func NewCenter(store Store, broadcaster Broadcaster) *Center {
	return &Center{store: store, broadcaster: broadcaster}
}

// Load restores the persisted feed at startup.
func (c *Center) Load(ctx context.Context) {
	items := c.store.Read(ctx)

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	if len(items) > 0 {
		log.Info().Int("count", len(items)).Msg("notification feed restored")
	}
}

// Ingest takes poll-synthesized candidates. A candidate survives only if its
// timestamp is strictly after the last completed poll and no stored
// notification shares its type+message key. Synthesized notifications are
// regenerated each poll from current counts, so both filters are needed to
// avoid re-surfacing the same item.
func (c *Center) Ingest(ctx context.Context, candidates []model.Notification) int {
	c.mu.Lock()
	lastCheck := c.lastCheck
	c.mu.Unlock()

	var fresh []model.Notification
	for _, cand := range candidates {
		if !cand.Timestamp.After(lastCheck) {
			continue
		}
		fresh = append(fresh, cand)
	}

	return c.add(ctx, fresh)
}

// Add inserts notifications raised locally (not via polling); only the
// type+message dedup applies.
func (c *Center) Add(ctx context.Context, items ...model.Notification) int {
	return c.add(ctx, items)
}

func (c *Center) add(ctx context.Context, candidates []model.Notification) int {
	c.mu.Lock()

	seen := make(map[string]bool, len(c.items))
	for _, existing := range c.items {
		seen[existing.DedupKey()] = true
	}

	var added []model.Notification
	for _, cand := range candidates {
		key := cand.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		if cand.ID == "" {
			cand.ID = uuid.NewString()
		}
		if cand.Timestamp.IsZero() {
			cand.Timestamp = time.Now()
		}
		added = append(added, cand)
	}

	if len(added) > 0 {
		c.items = append(added, c.items...)
		if len(c.items) > config.NotificationCap {
			c.items = c.items[:config.NotificationCap]
		}
		c.persistLocked(ctx)
	}
	c.mu.Unlock()

	if c.broadcaster != nil {
		for _, n := range added {
			c.broadcaster.BroadcastNotification(n)
		}
	}

	return len(added)
}

// MarkChecked advances the poll window. Called unconditionally at the end of
// every poll, even when nothing new was found.
func (c *Center) MarkChecked() {
	c.mu.Lock()
	c.lastCheck = time.Now()
	c.mu.Unlock()
}

func (c *Center) MarkRead(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			if !c.items[i].Read {
				c.items[i].Read = true
				c.persistLocked(ctx)
			}
			return true
		}
	}
	return false
}

func (c *Center) MarkAllRead(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	for i := range c.items {
		if !c.items[i].Read {
			c.items[i].Read = true
			changed = true
		}
	}
	if changed {
		c.persistLocked(ctx)
	}
}

func (c *Center) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persistLocked(ctx)
			return true
		}
	}
	return false
}

func (c *Center) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return
	}
	c.items = nil
	c.persistLocked(ctx)
}

// List returns a copy of the feed, newest first.
func (c *Center) List() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}

func (c *Center) LastCheck() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastCheck
}

func (c *Center) persistLocked(ctx context.Context) {
	c.store.Write(ctx, c.items)
}
