package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/config"
	"github.com/zabava/dashboard-go/internal/model"
)

// NotificationStore persists the capped notification feed under one key so
// it survives restarts.
type NotificationStore struct {
	kv  KV
	key string
}

func NewNotificationStore(kv KV) *NotificationStore {
	return &NotificationStore{kv: kv, key: config.NotificationStorageKey}
}

func (s *NotificationStore) Read(ctx context.Context) []model.Notification {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.Warn().Err(err).Msg("notification store read failed")
		return nil
	}
	if raw == "" {
		return nil
	}

	var items []model.Notification
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("stored notifications are corrupt, discarding")
		if err := s.kv.Del(ctx, s.key); err != nil {
			log.Warn().Err(err).Msg("notification store delete failed")
		}
		return nil
	}

	return items
}

func (s *NotificationStore) Write(ctx context.Context, items []model.Notification) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Error().Err(err).Msg("notification store marshal failed")
		return
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		log.Error().Err(err).Msg("notification store write failed")
	}
}
