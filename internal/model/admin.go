package model

import (
	"time"
)

// AdminOverview is the upstream summary consumed by the notification poller
// and the admin dashboard.
type AdminOverview struct {
	TotalPartners    int     `json:"totalPartners"`
	PendingPartners  int     `json:"pendingPartners"`
	TotalSubmissions int     `json:"totalSubmissions"`
	TotalRevenue     float64 `json:"totalRevenue"`
	QRGeneratedToday int     `json:"qrGeneratedToday"`
	RedemptionsToday int     `json:"redemptionsToday"`
}

type ActivityEntry struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type AnalyticsSummary struct {
	RecentActivity []ActivityEntry    `json:"recentActivity,omitempty"`
	Submissions    []SubmissionRecord `json:"submissions,omitempty"`
	TotalPoints    int                `json:"totalPoints,omitempty"`
	TotalRevenue   float64            `json:"totalRevenue,omitempty"`
}
