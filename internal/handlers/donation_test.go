package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yesfundme/internal/models"
	"yesfundme/internal/service"
)

func TestDonationHandlers_DonateAuthenticated(t *testing.T) {
	donations := &mockDonations{donateID: 88}
	auth := &mockAuth{parseID: 7}
	s := &service.Service{Authorization: auth, Donations: donations}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"amount":50,"message":"good luck"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/3/donations", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("donate status=%d, body=%s", w.Code, w.Body.String())
	}
	p := donations.lastDonate
	if p.CampaignID != 3 || p.Amount != 50 || p.Message != "good luck" {
		t.Fatalf("unexpected donate params: %+v", p)
	}
	if p.UserID == nil || *p.UserID != 7 {
		t.Fatalf("expected authenticated donor, got %+v", p.UserID)
	}
}

func TestDonationHandlers_DonateAsGuest(t *testing.T) {
	donations := &mockDonations{donateID: 89}
	s := &service.Service{Authorization: &mockAuth{}, Donations: donations}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"amount":25,"donor_name":"Jane"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/3/donations", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("guest donate status=%d, body=%s", w.Code, w.Body.String())
	}
	if donations.lastDonate.UserID != nil {
		t.Fatalf("guest donation must not carry a user ID: %+v", donations.lastDonate)
	}
	if donations.lastDonate.DonorName != "Jane" {
		t.Fatalf("expected donor name to pass through, got %q", donations.lastDonate.DonorName)
	}
}

func TestDonationHandlers_DonateErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"campaign missing", service.ErrCampaignNotFound, http.StatusNotFound},
		{"campaign closed", service.ErrCampaignNotActive, http.StatusConflict},
		{"bad amount", service.ErrInvalidAmount, http.StatusBadRequest},
		{"guest without name", service.ErrDonorNameRequired, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			donations := &mockDonations{donateErr: tc.err}
			s := &service.Service{Authorization: &mockAuth{}, Donations: donations}
			r := newTestRouter(s)

			body := bytes.NewBufferString(`{"amount":10,"donor_name":"Jane"}`)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/campaigns/3/donations", body)
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestDonationHandlers_ListForCampaign(t *testing.T) {
	donations := &mockDonations{forCampaign: []models.Donation{
		{ID: 1, CampaignID: 3, Amount: 100, DonorName: "Anonymous"},
		{ID: 2, CampaignID: 3, Amount: 50, UserDisplayName: "Alice"},
	}}
	s := &service.Service{Donations: donations}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/campaigns/3/donations", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	if donations.lastListID != 3 {
		t.Fatalf("expected campaign 3, got %d", donations.lastListID)
	}
	var out struct {
		Donations []models.Donation `json:"donations"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if len(out.Donations) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(out.Donations))
	}
}

func TestDonationHandlers_MyDonations(t *testing.T) {
	donations := &mockDonations{forUser: []models.Donation{{ID: 5, CampaignID: 2, Amount: 20}}}
	auth := &mockAuth{parseID: 7}
	s := &service.Service{Authorization: auth, Donations: donations}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/donations/mine", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("mine status=%d, body=%s", w.Code, w.Body.String())
	}
	if donations.lastListID != 7 {
		t.Fatalf("expected user 7, got %d", donations.lastListID)
	}

	// requires auth
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/donations/mine", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
