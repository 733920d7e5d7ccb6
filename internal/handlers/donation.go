package handlers

import (
	"errors"
	"net/http"

	"yesfundme/internal/service"

	"github.com/gin-gonic/gin"
)

type donateRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Message     string  `json:"message"`
	IsAnonymous bool    `json:"is_anonymous"`
	DonorName   string  `json:"donor_name"`
}

// @Summary      Donate to a campaign
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "campaign ID"
// @Success      201  {object}  map[string]int64  "id"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/campaigns/{id}/donations [post]
func (h *Handler) donate(c *gin.Context) {
	campaignID, ok := pathID(c)
	if !ok {
		return
	}

	var input donateRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.Donations.Donate(c.Request.Context(), service.DonateParams{
		CampaignID:  campaignID,
		UserID:      viewerID(c),
		Amount:      input.Amount,
		Message:     input.Message,
		IsAnonymous: input.IsAnonymous,
		DonorName:   input.DonorName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		case errors.Is(err, service.ErrCampaignNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "campaign is not accepting donations"})
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrDonorNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to record donation", "donation_record_failed", err, "campaign_id", campaignID)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      Donations for a campaign
// @Tags         donations
// @Produce      json
// @Param        id  path  int  true  "campaign ID"
// @Success      200  {object}  map[string]interface{}  "donations"
// @Router       /api/campaigns/{id}/donations [get]
func (h *Handler) listCampaignDonations(c *gin.Context) {
	campaignID, ok := pathID(c)
	if !ok {
		return
	}

	donations, err := h.services.Donations.ListForCampaign(c.Request.Context(), campaignID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list donations", "donation_list_failed", err, "campaign_id", campaignID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": donations})
}

// @Summary      My donations
// @Tags         donations
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "donations"
// @Failure      401  {object}  map[string]string
// @Router       /api/donations/mine [get]
// @Security     BearerAuth
func (h *Handler) myDonations(c *gin.Context) {
	uid := viewerID(c)
	if uid == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	donations, err := h.services.Donations.ListForUser(c.Request.Context(), *uid)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list donations", "my_donations_failed", err, "user_id", *uid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": donations})
}
