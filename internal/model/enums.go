package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePartner Role = "partner"
)

type PartnerStatus string

const (
	PartnerStatusPending  PartnerStatus = "pending"
	PartnerStatusApproved PartnerStatus = "approved"
	PartnerStatusDisabled PartnerStatus = "disabled"
)

type RedemptionStatus string

const (
	RedemptionStatusPending  RedemptionStatus = "pending"
	RedemptionStatusApplied  RedemptionStatus = "applied"
	RedemptionStatusUsed     RedemptionStatus = "used"
	RedemptionStatusRejected RedemptionStatus = "rejected"
)

type RewardStatus string

const (
	RewardStatusActive   RewardStatus = "active"
	RewardStatusInactive RewardStatus = "inactive"
)

type NotificationType string

const (
	NotificationTypePartner    NotificationType = "partner"
	NotificationTypeUser       NotificationType = "user"
	NotificationTypeRedemption NotificationType = "redemption"
	NotificationTypeSubmission NotificationType = "submission"
	NotificationTypeSystem     NotificationType = "system"
)

type NotificationPriority string

const (
	PriorityHigh   NotificationPriority = "high"
	PriorityMedium NotificationPriority = "medium"
	PriorityLow    NotificationPriority = "low"
)
