package model

import (
	"time"
)

// SubmissionRecord is a ticket purchase/visit event owned by the upstream
// backend. Fetched read-mostly; only the visited flag is mutable, via the
// partner visit endpoint.
type SubmissionRecord struct {
	ID              string     `json:"id,omitempty"`
	Email           string     `json:"email"`
	Ticket          string     `json:"ticket"`
	NumPeople       int        `json:"numPeople"`
	TotalPrice      float64    `json:"totalPrice"`
	EstimatedPoints int        `json:"estimatedPoints"`
	Used            bool       `json:"used"`
	Visited         bool       `json:"visited"`
	VisitedAt       *time.Time `json:"visitedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	RedemptionCode  string     `json:"redemptionCode,omitempty"`
	PartnerID       string     `json:"partnerId,omitempty"`
}

type Redemption struct {
	Code       string           `json:"code"`
	Email      string           `json:"email"`
	RewardID   string           `json:"rewardId,omitempty"`
	RewardName string           `json:"rewardName,omitempty"`
	Points     int              `json:"points,omitempty"`
	Status     RedemptionStatus `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UsedAt     *time.Time       `json:"usedAt,omitempty"`
}
