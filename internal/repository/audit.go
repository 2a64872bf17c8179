package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zabava/dashboard-go/internal/database"
	"github.com/zabava/dashboard-go/internal/model"
)

type AuditRepository interface {
	Insert(ctx context.Context, params model.CreateAuditEventParams) (*model.AuditEvent, error)
	ListRecent(ctx context.Context, limit int) ([]model.AuditEvent, error)
	ListByPartner(ctx context.Context, partnerID string, limit int) ([]model.AuditEvent, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type auditRepo struct {
	db database.DBTX
}

func NewAuditRepository(db *sqlx.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Insert(ctx context.Context, params model.CreateAuditEventParams) (*model.AuditEvent, error) {
	var event model.AuditEvent
	err := r.db.GetContext(ctx, &event, `
		INSERT INTO audit_events (id, event_type, actor, partner_id, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, uuid.NewString(), params.EventType, params.Actor, params.PartnerID, params.Details)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *auditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditEvent, error) {
	events := []model.AuditEvent{}
	err := r.db.SelectContext(ctx, &events, `
		SELECT * FROM audit_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *auditRepo) ListByPartner(ctx context.Context, partnerID string, limit int) ([]model.AuditEvent, error) {
	events := []model.AuditEvent{}
	err := r.db.SelectContext(ctx, &events, `
		SELECT * FROM audit_events
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, partnerID, limit)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *auditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM audit_events
		WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
