package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.DashboardSummary
// @Failure      401  {object}  map[string]string
// @Router       /api/dashboard [get]
// @Security     BearerAuth
func (h *Handler) dashboard(c *gin.Context) {
	uid := viewerID(c)
	if uid == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	summary, err := h.services.Dashboard.Summary(c.Request.Context(), *uid)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to build dashboard", "dashboard_failed", err, "user_id", *uid)
		return
	}
	c.JSON(http.StatusOK, summary)
}
