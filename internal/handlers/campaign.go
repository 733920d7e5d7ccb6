package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"yesfundme/internal/identity"
	"yesfundme/internal/repository"
	"yesfundme/internal/service"

	"github.com/gin-gonic/gin"
)

type createCampaignRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	GoalAmount  float64 `json:"goal_amount" binding:"required"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category" binding:"required"`
}

type updateCampaignRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	GoalAmount  *float64 `json:"goal_amount"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	Status      *string  `json:"status"`
}

// pathID parses the :id path parameter. Writes a 400 and returns false when
// the parameter is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Param        search    query  string  false  "title substring filter"
// @Param        category  query  string  false  "category filter"
// @Param        sort      query  string  false  "sort column"
// @Param        order     query  string  false  "asc or desc"
// @Param        page      query  int     false  "page number"
// @Param        limit     query  int     false  "page size"
// @Success      200  {object}  map[string]interface{}  "campaigns, total, page, limit"
// @Router       /api/campaigns [get]
func (h *Handler) listCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	filter := repository.CampaignFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
		Page:     page,
		Limit:    limit,
	}

	campaigns, total, err := h.services.Campaigns.List(c.Request.Context(), filter)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list campaigns", "campaign_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns": campaigns,
		"total":     total,
		"page":      filter.Page,
		"limit":     filter.Limit,
	})
}

// @Summary      Campaign detail
// @Tags         campaigns
// @Produce      json
// @Param        id  path  int  true  "campaign ID"
// @Success      200  {object}  map[string]interface{}  "campaign, is_owner"
// @Failure      404  {object}  map[string]string
// @Router       /api/campaigns/{id} [get]
func (h *Handler) getCampaign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	campaign, err := h.services.Campaigns.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load campaign", "campaign_get_failed", err, "campaign_id", id)
		return
	}

	isOwner := identity.Same(identity.FromAny(viewerID(c)), identity.Int64(campaign.UserID))
	c.JSON(http.StatusOK, gin.H{
		"campaign": campaign,
		"is_owner": isOwner,
	})
}

// @Summary      Create campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]int64  "id"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/campaigns [post]
// @Security     BearerAuth
func (h *Handler) createCampaign(c *gin.Context) {
	uid := viewerID(c)
	if uid == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input createCampaignRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.Campaigns.Create(c.Request.Context(), service.CreateCampaignParams{
		UserID:      *uid,
		Title:       input.Title,
		Description: input.Description,
		GoalAmount:  input.GoalAmount,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	})
	if err != nil {
		if isCampaignValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create campaign", "campaign_create_failed", err, "user_id", *uid)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      Update campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "campaign ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/campaigns/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateCampaign(c *gin.Context) {
	uid := viewerID(c)
	if uid == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var input updateCampaignRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	err := h.services.Campaigns.Update(c.Request.Context(), id, identity.Int64(*uid), service.UpdateCampaignParams{
		Title:       input.Title,
		Description: input.Description,
		GoalAmount:  input.GoalAmount,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Status:      input.Status,
	})
	if err != nil {
		h.writeCampaignMutationErr(c, err, id)
		return
	}

	campaign, err := h.services.Campaigns.Get(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load campaign", "campaign_reload_failed", err, "campaign_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

// @Summary      Cancel campaign
// @Tags         campaigns
// @Produce      json
// @Param        id  path  int  true  "campaign ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/campaigns/{id} [delete]
// @Security     BearerAuth
func (h *Handler) cancelCampaign(c *gin.Context) {
	uid := viewerID(c)
	if uid == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Campaigns.Cancel(c.Request.Context(), id, identity.Int64(*uid)); err != nil {
		h.writeCampaignMutationErr(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// writeCampaignMutationErr maps service errors from campaign updates and
// cancellations to HTTP statuses.
func (h *Handler) writeCampaignMutationErr(c *gin.Context, err error, id int64) {
	switch {
	case errors.Is(err, service.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
	case errors.Is(err, service.ErrNotCampaignOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the campaign owner may do that"})
	case isCampaignValidationErr(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to update campaign", "campaign_mutation_failed", err, "campaign_id", id)
	}
}

func isCampaignValidationErr(err error) bool {
	return errors.Is(err, service.ErrInvalidCategory) ||
		errors.Is(err, service.ErrInvalidStatus) ||
		errors.Is(err, service.ErrInvalidGoal) ||
		errors.Is(err, service.ErrMissingTitle)
}
