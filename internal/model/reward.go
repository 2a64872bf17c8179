package model

type Reward struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	PointsCost   int          `json:"pointsCost"`
	Category     string       `json:"category,omitempty"`
	AvailableFor []string     `json:"availableFor,omitempty"`
	Stock        *int         `json:"stock,omitempty"`
	Status       RewardStatus `json:"status"`
}

type RewardParams struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	PointsCost   int          `json:"pointsCost"`
	Category     string       `json:"category,omitempty"`
	AvailableFor []string     `json:"availableFor,omitempty"`
	Stock        *int         `json:"stock,omitempty"`
	Status       RewardStatus `json:"status,omitempty"`
}

type BonusPoints struct {
	Email       string       `json:"email"`
	Points      int          `json:"points"`
	Visits      int          `json:"visits,omitempty"`
	Redemptions []Redemption `json:"redemptions,omitempty"`
}
