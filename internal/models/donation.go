package models

import "time"

// Donation is a single contribution to a campaign. Immutable once recorded.
// UserID is nil for guest donations; DonorName is set only for guests.
type Donation struct {
	ID          int64     `json:"id"`
	CampaignID  int64     `json:"campaign_id"`
	UserID      *int64    `json:"user_id,omitempty"`
	Amount      float64   `json:"amount"`
	Message     string    `json:"message,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	DonorName   string    `json:"donor_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined display fields, populated by listing queries.
	UserDisplayName string `json:"user_display_name,omitempty"`
	CampaignTitle   string `json:"campaign_title,omitempty"`
	CampaignImage   string `json:"campaign_image,omitempty"`
}
