package service

import (
	"context"

	"yesfundme/internal/feed"
	"yesfundme/internal/identity"
	"yesfundme/internal/models"
	"yesfundme/internal/repository"
)

// Authorization covers registration, credential checks and the profile of
// the signed-in user.
type Authorization interface {
	SignUp(ctx context.Context, p SignUpParams) (*models.User, string, error)
	SignIn(ctx context.Context, username, password string) (*models.User, string, error)
	ParseToken(accessToken string) (int64, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, displayName, avatarURL *string) (*models.User, error)
}

// Campaigns exposes campaign CRUD with ownership enforcement.
type Campaigns interface {
	Create(ctx context.Context, p CreateCampaignParams) (int64, error)
	Get(ctx context.Context, id int64) (*models.Campaign, error)
	List(ctx context.Context, f repository.CampaignFilter) ([]models.Campaign, int, error)
	Update(ctx context.Context, id int64, actor identity.Ref, p UpdateCampaignParams) error
	Cancel(ctx context.Context, id int64, actor identity.Ref) error
}

// Donations records contributions and lists them for display.
type Donations interface {
	Donate(ctx context.Context, p DonateParams) (int64, error)
	ListForCampaign(ctx context.Context, campaignID int64) ([]models.Donation, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Donation, error)
}

// Dashboard aggregates a user's campaigns and donations.
type Dashboard interface {
	Summary(ctx context.Context, userID int64) (*DashboardSummary, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Campaigns
	Donations
	Dashboard
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig, publisher feed.Publisher) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Campaigns:     NewCampaignService(repos.Campaigns),
		Donations:     NewDonationService(repos.Donations, repos.Campaigns, repos.Users, publisher),
		Dashboard:     NewDashboardService(repos.Campaigns, repos.Donations),
	}
}
