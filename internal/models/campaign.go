package models

import "time"

// Campaign statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Categories a campaign can belong to.
var Categories = []string{"medical", "education", "community", "creative", "emergency", "other"}

// ValidCategory reports whether c is one of the known campaign categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known campaign statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusCompleted || s == StatusCancelled
}

// Campaign is a fundraising campaign. CurrentAmount always equals the sum of
// all donation amounts recorded against it; the donation repository keeps the
// two in step inside one transaction.
type Campaign struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	GoalAmount    float64   `json:"goal_amount"`
	CurrentAmount float64   `json:"current_amount"`
	ImageURL      string    `json:"image_url,omitempty"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	CreatorName   string    `json:"creator_name,omitempty"`
	CreatorAvatar string    `json:"creator_avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
