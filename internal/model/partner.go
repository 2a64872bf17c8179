package model

import (
	"time"
)

type Partner struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email,omitempty"`
	ContactName string        `json:"contactName,omitempty"`
	Category    string        `json:"category,omitempty"`
	Status      PartnerStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

type UpdatePartnerParams struct {
	Name        *string        `json:"name,omitempty"`
	Email       *string        `json:"email,omitempty"`
	ContactName *string        `json:"contactName,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Status      *PartnerStatus `json:"status,omitempty"`
}

type Invite struct {
	Token     string     `json:"token"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	PartnerID string     `json:"partnerId"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	Used      bool       `json:"used"`
}

type CreateInviteParams struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	PartnerID string `json:"partnerId"`
}
