package service

import (
	"context"
	"errors"
	"strings"

	"yesfundme/internal/identity"
	"yesfundme/internal/models"
	"yesfundme/internal/repository"
)

// Domain errors for campaign flows.
var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrNotCampaignOwner = errors.New("not the campaign owner")
	ErrInvalidCategory  = errors.New("invalid campaign category")
	ErrInvalidStatus    = errors.New("invalid campaign status")
	ErrInvalidGoal      = errors.New("goal amount must be positive")
	ErrMissingTitle     = errors.New("campaign title is required")
)

// CreateCampaignParams is the input for a new campaign.
type CreateCampaignParams struct {
	UserID      int64
	Title       string
	Description string
	GoalAmount  float64
	ImageURL    string
	Category    string
}

// UpdateCampaignParams carries a partial update; nil fields are untouched.
type UpdateCampaignParams struct {
	Title       *string
	Description *string
	GoalAmount  *float64
	ImageURL    *string
	Category    *string
	Status      *string
}

type CampaignService struct {
	campaigns repository.Campaigns
}

func NewCampaignService(campaigns repository.Campaigns) *CampaignService {
	return &CampaignService{campaigns: campaigns}
}

// Create validates and stores a new campaign, returning its ID.
func (s *CampaignService) Create(ctx context.Context, p CreateCampaignParams) (int64, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return 0, ErrMissingTitle
	}
	if p.GoalAmount <= 0 {
		return 0, ErrInvalidGoal
	}
	if !models.ValidCategory(p.Category) {
		return 0, ErrInvalidCategory
	}

	return s.campaigns.Create(ctx, models.Campaign{
		UserID:      p.UserID,
		Title:       title,
		Description: p.Description,
		GoalAmount:  p.GoalAmount,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
	})
}

// Get fetches one campaign with creator display fields.
func (s *CampaignService) Get(ctx context.Context, id int64) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

// List returns active campaigns matching the filter plus the total count.
func (s *CampaignService) List(ctx context.Context, f repository.CampaignFilter) ([]models.Campaign, int, error) {
	return s.campaigns.List(ctx, f)
}

// Update applies a partial update after verifying the actor owns the
// campaign. Ownership uses identity.Same: the actor reference may come from
// a JWT claim while the stored owner ID is an int64.
func (s *CampaignService) Update(ctx context.Context, id int64, actor identity.Ref, p UpdateCampaignParams) error {
	c, err := s.requireOwner(ctx, id, actor)
	if err != nil {
		return err
	}
	if p.GoalAmount != nil && *p.GoalAmount <= 0 {
		return ErrInvalidGoal
	}
	if p.Category != nil && !models.ValidCategory(*p.Category) {
		return ErrInvalidCategory
	}
	if p.Status != nil && !models.ValidStatus(*p.Status) {
		return ErrInvalidStatus
	}

	return s.campaigns.Update(ctx, c.ID, repository.CampaignUpdate{
		Title:       p.Title,
		Description: p.Description,
		GoalAmount:  p.GoalAmount,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Status:      p.Status,
	})
}

// Cancel marks the campaign cancelled; only the owner may do it.
func (s *CampaignService) Cancel(ctx context.Context, id int64, actor identity.Ref) error {
	c, err := s.requireOwner(ctx, id, actor)
	if err != nil {
		return err
	}
	return s.campaigns.SetStatus(ctx, c.ID, models.StatusCancelled)
}

func (s *CampaignService) requireOwner(ctx context.Context, id int64, actor identity.Ref) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	if !identity.Same(actor, identity.Int64(c.UserID)) {
		return nil, ErrNotCampaignOwner
	}
	return c, nil
}
