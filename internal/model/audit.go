package model

import (
	"time"
)

type AuditEvent struct {
	ID        string    `db:"id" json:"id"`
	EventType string    `db:"event_type" json:"eventType"`
	Actor     string    `db:"actor" json:"actor,omitempty"`
	PartnerID *string   `db:"partner_id" json:"partnerId,omitempty"`
	Details   []byte    `db:"details" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateAuditEventParams struct {
	EventType string
	Actor     string
	PartnerID *string
	Details   []byte
}
