package handlers

import (
	"context"
	"net/http"

	"yesfundme/internal/feed"
	"yesfundme/internal/identity"
	"yesfundme/internal/models"
	"yesfundme/internal/repository"
	"yesfundme/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser  *models.User
	signUpToken string
	signUpErr   error
	signInUser  *models.User
	signInToken string
	signInErr   error
	parseID     int64
	parseErr    error
	getUser     *models.User
	getUserErr  error
	updatedUser *models.User
	updateErr   error

	lastSignUp     service.SignUpParams
	lastSignInUser string
	lastSignInPass string
	lastParseToken string
}

func (m *mockAuth) SignUp(ctx context.Context, p service.SignUpParams) (*models.User, string, error) {
	m.lastSignUp = p
	return m.signUpUser, m.signUpToken, m.signUpErr
}
func (m *mockAuth) SignIn(ctx context.Context, username, password string) (*models.User, string, error) {
	m.lastSignInUser = username
	m.lastSignInPass = password
	return m.signInUser, m.signInToken, m.signInErr
}
func (m *mockAuth) ParseToken(accessToken string) (int64, error) {
	m.lastParseToken = accessToken
	return m.parseID, m.parseErr
}
func (m *mockAuth) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return m.getUser, m.getUserErr
}
func (m *mockAuth) UpdateProfile(ctx context.Context, id int64, displayName, avatarURL *string) (*models.User, error) {
	return m.updatedUser, m.updateErr
}

type mockCampaigns struct {
	createID   int64
	createErr  error
	campaign   *models.Campaign
	getErr     error
	list       []models.Campaign
	listTotal  int
	listErr    error
	updateErr  error
	cancelErr  error

	lastCreate service.CreateCampaignParams
	lastFilter repository.CampaignFilter
	lastUpdate service.UpdateCampaignParams
	lastActor  identity.Ref
	lastID     int64
}

func (m *mockCampaigns) Create(ctx context.Context, p service.CreateCampaignParams) (int64, error) {
	m.lastCreate = p
	return m.createID, m.createErr
}
func (m *mockCampaigns) Get(ctx context.Context, id int64) (*models.Campaign, error) {
	m.lastID = id
	return m.campaign, m.getErr
}
func (m *mockCampaigns) List(ctx context.Context, f repository.CampaignFilter) ([]models.Campaign, int, error) {
	m.lastFilter = f
	return m.list, m.listTotal, m.listErr
}
func (m *mockCampaigns) Update(ctx context.Context, id int64, actor identity.Ref, p service.UpdateCampaignParams) error {
	m.lastID = id
	m.lastActor = actor
	m.lastUpdate = p
	return m.updateErr
}
func (m *mockCampaigns) Cancel(ctx context.Context, id int64, actor identity.Ref) error {
	m.lastID = id
	m.lastActor = actor
	return m.cancelErr
}

type mockDonations struct {
	donateID    int64
	donateErr   error
	forCampaign []models.Donation
	forUser     []models.Donation
	listErr     error

	lastDonate service.DonateParams
	lastListID int64
}

func (m *mockDonations) Donate(ctx context.Context, p service.DonateParams) (int64, error) {
	m.lastDonate = p
	return m.donateID, m.donateErr
}
func (m *mockDonations) ListForCampaign(ctx context.Context, campaignID int64) ([]models.Donation, error) {
	m.lastListID = campaignID
	return m.forCampaign, m.listErr
}
func (m *mockDonations) ListForUser(ctx context.Context, userID int64) ([]models.Donation, error) {
	m.lastListID = userID
	return m.forUser, m.listErr
}

type mockDashboard struct {
	summary *service.DashboardSummary
	err     error
}

func (m *mockDashboard) Summary(ctx context.Context, userID int64) (*service.DashboardSummary, error) {
	return m.summary, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	hub := feed.NewHub()
	h := NewHandler(s, nil, hub)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
