package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/model"
	"github.com/zabava/dashboard-go/internal/repository"
)

type EventType string

const (
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailure       EventType = "login_failure"
	EventSignup             EventType = "signup"
	EventLogout             EventType = "logout"
	EventSessionExpired     EventType = "session_expired"
	EventRedemptionApplied  EventType = "redemption_applied"
	EventRedemptionRejected EventType = "redemption_rejected"
	EventVisitMarked        EventType = "visit_marked"
	EventRewardCreated      EventType = "reward_created"
	EventRewardUpdated      EventType = "reward_updated"
	EventRewardDeleted      EventType = "reward_deleted"
	EventInviteCreated      EventType = "invite_created"
	EventPartnerUpdated     EventType = "partner_updated"
	EventRateLimitExceeded  EventType = "rate_limit_exceeded"
)

type Event struct {
	Type      EventType
	Actor     string
	PartnerID string
	IP        string
	UserAgent string
	Details   map[string]interface{}
}

// Recorder writes audit events to the structured log and, best-effort, to the
// audit_events table. Persistence failures are logged and swallowed so audit
// writes never break the request path.
type Recorder struct {
	repo repository.AuditRepository
}

func NewRecorder(repo repository.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, event Event) {
	logEvent(event)

	if r == nil || r.repo == nil {
		return
	}

	var details []byte
	if len(event.Details) > 0 {
		var err error
		details, err = json.Marshal(event.Details)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal audit details")
		}
	}

	var partnerID *string
	if event.PartnerID != "" {
		partnerID = &event.PartnerID
	}

	params := model.CreateAuditEventParams{
		EventType: string(event.Type),
		Actor:     event.Actor,
		PartnerID: partnerID,
		Details:   details,
	}
	if _, err := r.repo.Insert(ctx, params); err != nil {
		log.Error().Err(err).Str("event_type", string(event.Type)).Msg("failed to persist audit event")
	}
}

// RecordFromRequest fills the client address fields from the request before
// recording.
func (r *Recorder) RecordFromRequest(req *http.Request, event Event) {
	event.IP = getClientIP(req)
	event.UserAgent = req.UserAgent()
	r.Record(req.Context(), event)
}

func logEvent(event Event) {
	logger := log.With().
		Str("audit", "dashboard").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now()).
		Logger()

	if event.Actor != "" {
		logger = logger.With().Str("actor", event.Actor).Logger()
	}
	if event.PartnerID != "" {
		logger = logger.With().Str("partner_id", event.PartnerID).Logger()
	}
	if event.IP != "" {
		logger = logger.With().Str("ip", event.IP).Logger()
	}
	if event.UserAgent != "" {
		logger = logger.With().Str("user_agent", event.UserAgent).Logger()
	}

	logLine := logger.Info()
	for k, v := range event.Details {
		logLine = addField(logLine, k, v)
	}
	logLine.Msg("audit event")
}

func addField(e *zerolog.Event, key string, value interface{}) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case int64:
		return e.Int64(key, v)
	case bool:
		return e.Bool(key, v)
	default:
		return e.Interface(key, v)
	}
}

func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
