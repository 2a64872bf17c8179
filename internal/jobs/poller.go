package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/config"
	"github.com/zabava/dashboard-go/internal/model"
)

// AdminSummaries is the slice of the API client the poller consumes.
type AdminSummaries interface {
	AdminOverview(ctx context.Context, token string) (*model.AdminOverview, error)
	AdminAnalytics(ctx context.Context, token, mode string) (*model.AnalyticsSummary, error)
}

// SessionSource exposes the current session; satisfied by auth.Manager.
type SessionSource interface {
	Token() string
	IsAdmin() bool
}

// NotificationSink receives synthesized notifications; satisfied by
// notify.Center.
type NotificationSink interface {
	Ingest(ctx context.Context, candidates []model.Notification) int
	MarkChecked()
}

// NotificationPoller pulls the admin summary endpoints on an interval and on
// demand, synthesizing feed notifications from the counters. Polls no-op
// unless the current session role is admin. Overlapping polls are not
// serialized: synthesis is idempotent and the sink deduplicates.
type NotificationPoller struct {
	client   AdminSummaries
	session  SessionSource
	sink     NotificationSink
	interval time.Duration
	done     chan struct{}
	wake     chan struct{}
}

func NewNotificationPoller(
	client AdminSummaries,
	session SessionSource,
	sink NotificationSink,
	interval time.Duration,
) *NotificationPoller {
	return &NotificationPoller{
		client:   client,
		session:  session,
		sink:     sink,
		interval: interval,
		done:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
	}
}

func (p *NotificationPoller) Start() {
	go p.run()
	log.Info().Dur("interval", p.interval).Msg("notification poller started")
}

func (p *NotificationPoller) Stop() {
	close(p.done)
	log.Info().Msg("notification poller stopped")
}

// Wake forces an immediate poll, the analog of the dashboard regaining
// visibility. Coalesces when a wake is already pending.
func (p *NotificationPoller) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *NotificationPoller) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.poll()
		case <-p.wake:
			p.poll()
		}
	}
}

func (p *NotificationPoller) poll() {
	if !p.session.IsAdmin() {
		return
	}
	token := p.session.Token()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The poll window advances even when nothing new was found, or when the
	// overview fetch failed.
	defer p.sink.MarkChecked()

	overview, err := p.client.AdminOverview(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("notification poll: overview fetch failed")
		return
	}

	now := time.Now()
	candidates := synthesizeFromOverview(overview, now)

	// Analytics is best-effort: its failure never blocks overview-derived
	// notifications.
	analytics, err := p.client.AdminAnalytics(ctx, token, "metrics")
	if err != nil {
		log.Debug().Err(err).Msg("notification poll: analytics fetch failed")
	} else {
		candidates = append(candidates, synthesizeFromActivity(analytics.RecentActivity)...)
	}

	if added := p.sink.Ingest(ctx, candidates); added > 0 {
		log.Info().Int("count", added).Msg("new notifications")
	}
}

func synthesizeFromOverview(overview *model.AdminOverview, now time.Time) []model.Notification {
	var out []model.Notification

	if overview.PendingPartners > 0 {
		out = append(out, model.Notification{
			Type:      model.NotificationTypePartner,
			Title:     "Partner approvals pending",
			Message:   fmt.Sprintf("%d partner(s) awaiting approval", overview.PendingPartners),
			Timestamp: now,
			Priority:  model.PriorityHigh,
			ActionURL: "/admin/partners",
		})
	}

	if overview.QRGeneratedToday > 0 {
		out = append(out, model.Notification{
			Type:      model.NotificationTypeSubmission,
			Title:     "QR codes generated",
			Message:   fmt.Sprintf("%d QR code(s) generated today", overview.QRGeneratedToday),
			Timestamp: now,
			Priority:  model.PriorityLow,
		})
	}

	return out
}

func synthesizeFromActivity(entries []model.ActivityEntry) []model.Notification {
	if len(entries) > config.RecentActivityLimit {
		entries = entries[:config.RecentActivityLimit]
	}

	out := make([]model.Notification, 0, len(entries))
	for _, entry := range entries {
		out = append(out, model.Notification{
			Type:      activityType(entry.Type),
			Title:     "Recent activity",
			Message:   entry.Description,
			Timestamp: entry.Timestamp,
			Priority:  model.PriorityMedium,
		})
	}
	return out
}

func activityType(entryType string) model.NotificationType {
	switch entryType {
	case "user", "signup":
		return model.NotificationTypeUser
	case "redemption":
		return model.NotificationTypeRedemption
	case "submission", "purchase":
		return model.NotificationTypeSubmission
	case "partner":
		return model.NotificationTypePartner
	default:
		return model.NotificationTypeSystem
	}
}
