package repository

import (
	"context"
	"database/sql"

	"yesfundme/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, displayName, avatarURL *string) error
}

// CampaignFilter narrows List. Zero values mean "no filter"; Page/Limit are
// 1-based and default-corrected by the implementation.
type CampaignFilter struct {
	Search   string
	Category string
	Sort     string
	Order    string
	Page     int
	Limit    int
}

type Campaigns interface {
	Create(ctx context.Context, c models.Campaign) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Campaign, error)
	List(ctx context.Context, f CampaignFilter) ([]models.Campaign, int, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Campaign, error)
	Update(ctx context.Context, id int64, upd CampaignUpdate) error
	SetStatus(ctx context.Context, id int64, status string) error
}

// CampaignUpdate carries partial updates; nil fields are left untouched.
type CampaignUpdate struct {
	Title       *string
	Description *string
	GoalAmount  *float64
	ImageURL    *string
	Category    *string
	Status      *string
}

// Donations is the funding ledger: Record appends one immutable donation row
// and bumps the campaign aggregate in the same transaction.
type Donations interface {
	Record(ctx context.Context, d models.Donation) (int64, error)
	ListForCampaign(ctx context.Context, campaignID int64) ([]models.Donation, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Donation, error)
}

type Repository struct {
	Users     Users
	Campaigns Campaigns
	Donations Donations
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Campaigns: NewCampaignRepository(db),
		Donations: NewDonationRepository(db),
	}
}
