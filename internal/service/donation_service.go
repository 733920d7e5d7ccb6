package service

import (
	"context"
	"errors"
	"strings"

	"yesfundme/internal/feed"
	"yesfundme/internal/models"
	"yesfundme/internal/repository"
)

// Domain errors for donation flows.
var (
	ErrInvalidAmount     = errors.New("donation amount must be positive")
	ErrCampaignNotActive = errors.New("campaign is not accepting donations")
	ErrDonorNameRequired = errors.New("donor name is required for guest donations")
)

// anonymousDonor replaces the donor identity in public listings and feed
// events for anonymous donations.
const anonymousDonor = "Anonymous"

// DonateParams is the input to record one donation. UserID nil means a guest
// donation, which must carry a DonorName; authenticated donations must not
// (the user's stored display name is used instead).
type DonateParams struct {
	CampaignID  int64
	UserID      *int64
	Amount      float64
	Message     string
	IsAnonymous bool
	DonorName   string
}

type DonationService struct {
	donations repository.Donations
	campaigns repository.Campaigns
	users     repository.Users
	publisher feed.Publisher
}

func NewDonationService(donations repository.Donations, campaigns repository.Campaigns, users repository.Users, publisher feed.Publisher) *DonationService {
	return &DonationService{donations: donations, campaigns: campaigns, users: users, publisher: publisher}
}

// Donate checks the campaign accepts donations, records the contribution
// through the ledger and publishes a funding update. The ledger call is the
// atomic unit; everything before it is precondition checking and everything
// after it is advisory.
func (s *DonationService) Donate(ctx context.Context, p DonateParams) (int64, error) {
	if p.Amount <= 0 {
		return 0, ErrInvalidAmount
	}

	donorName := strings.TrimSpace(p.DonorName)
	if p.UserID == nil {
		if donorName == "" {
			return 0, ErrDonorNameRequired
		}
	} else {
		// Authenticated donors are displayed via their profile.
		donorName = ""
	}

	c, err := s.campaigns.GetByID(ctx, p.CampaignID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, ErrCampaignNotFound
	}
	if c.Status != models.StatusActive {
		return 0, ErrCampaignNotActive
	}

	donationID, err := s.donations.Record(ctx, models.Donation{
		CampaignID:  p.CampaignID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Message:     p.Message,
		IsAnonymous: p.IsAnonymous,
		DonorName:   donorName,
	})
	if err != nil {
		return 0, err
	}

	if s.publisher != nil {
		s.publisher.Publish(feed.Event{
			CampaignID:    c.ID,
			DonationID:    donationID,
			Amount:        p.Amount,
			CurrentAmount: c.CurrentAmount + p.Amount,
			GoalAmount:    c.GoalAmount,
			DonorName:     s.displayDonor(ctx, p, donorName),
			Message:       p.Message,
		})
	}

	return donationID, nil
}

// ListForCampaign returns a campaign's donations with anonymous donors
// masked for public display.
func (s *DonationService) ListForCampaign(ctx context.Context, campaignID int64) ([]models.Donation, error) {
	out, err := s.donations.ListForCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].IsAnonymous {
			out[i].UserID = nil
			out[i].UserDisplayName = ""
			out[i].DonorName = anonymousDonor
		}
	}
	return out, nil
}

// ListForUser returns the donations a signed-in user has made.
func (s *DonationService) ListForUser(ctx context.Context, userID int64) ([]models.Donation, error) {
	return s.donations.ListForUser(ctx, userID)
}

// displayDonor resolves the name shown in feed events.
func (s *DonationService) displayDonor(ctx context.Context, p DonateParams, guestName string) string {
	if p.IsAnonymous {
		return anonymousDonor
	}
	if p.UserID == nil {
		return guestName
	}
	if u, err := s.users.GetByID(ctx, *p.UserID); err == nil && u != nil {
		return u.DisplayName
	}
	return anonymousDonor
}
