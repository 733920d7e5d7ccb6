package service

import (
	"context"

	"yesfundme/internal/models"
	"yesfundme/internal/repository"
)

// DashboardStats summarizes a user's activity.
type DashboardStats struct {
	TotalRaised        float64 `json:"total_raised"`
	TotalDonated       float64 `json:"total_donated"`
	CampaignCount      int     `json:"campaign_count"`
	DonationCount      int     `json:"donation_count"`
	ActiveCampaigns    int     `json:"active_campaigns"`
	CompletedCampaigns int     `json:"completed_campaigns"`
	CancelledCampaigns int     `json:"cancelled_campaigns"`
}

// DashboardSummary is the full dashboard payload.
type DashboardSummary struct {
	Campaigns []models.Campaign `json:"campaigns"`
	Donations []models.Donation `json:"donations"`
	Stats     DashboardStats    `json:"stats"`
}

type DashboardService struct {
	campaigns repository.Campaigns
	donations repository.Donations
}

func NewDashboardService(campaigns repository.Campaigns, donations repository.Donations) *DashboardService {
	return &DashboardService{campaigns: campaigns, donations: donations}
}

// Summary gathers the user's campaigns and donations and derives totals.
func (s *DashboardService) Summary(ctx context.Context, userID int64) (*DashboardSummary, error) {
	campaigns, err := s.campaigns.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	donations, err := s.donations.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{
		CampaignCount: len(campaigns),
		DonationCount: len(donations),
	}
	for _, c := range campaigns {
		stats.TotalRaised += c.CurrentAmount
		switch c.Status {
		case models.StatusActive:
			stats.ActiveCampaigns++
		case models.StatusCompleted:
			stats.CompletedCampaigns++
		case models.StatusCancelled:
			stats.CancelledCampaigns++
		}
	}
	for _, d := range donations {
		stats.TotalDonated += d.Amount
	}

	return &DashboardSummary{
		Campaigns: campaigns,
		Donations: donations,
		Stats:     stats,
	}, nil
}
