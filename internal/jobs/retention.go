package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/repository"
)

// AuditRetentionJob trims old audit rows on an interval.
type AuditRetentionJob struct {
	auditRepo repository.AuditRepository
	interval  time.Duration
	maxAge    time.Duration
	done      chan struct{}
}

func NewAuditRetentionJob(auditRepo repository.AuditRepository, interval, maxAge time.Duration) *AuditRetentionJob {
	return &AuditRetentionJob{
		auditRepo: auditRepo,
		interval:  interval,
		maxAge:    maxAge,
		done:      make(chan struct{}),
	}
}

func (j *AuditRetentionJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("audit retention job started")
}

func (j *AuditRetentionJob) Stop() {
	close(j.done)
	log.Info().Msg("audit retention job stopped")
}

func (j *AuditRetentionJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *AuditRetentionJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-j.maxAge)
	count, err := j.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to trim audit events")
	} else if count > 0 {
		log.Info().Int64("count", count).Msg("trimmed audit events")
	}
}
