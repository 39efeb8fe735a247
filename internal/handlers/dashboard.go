package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/collab-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/collab-dashboard-api/internal/errors"
	"github.com/yukikurage/collab-dashboard-api/internal/middleware"
	sessionstore "github.com/yukikurage/collab-dashboard-api/internal/session"
	"github.com/yukikurage/collab-dashboard-api/internal/services"
)

// DashboardHandler serves the assembled project dashboard and its panel state.
type DashboardHandler struct {
	dashboardService *services.DashboardService
	snapshots        *sessionstore.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService, snapshots *sessionstore.Store) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		snapshots:        snapshots,
	}
}

// GetDashboard assembles the dashboard for the resolved (user, member) pair.
// Member access is resolved by RequireMemberAccess.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	sessionKey, exists := middleware.GetSessionKey(c)
	if !exists {
		apierrors.Unauthorized(c, "Session not initialized")
		return
	}

	memberID, exists := middleware.GetMemberID(c)
	if !exists {
		apierrors.InternalError(c, "Member not resolved")
		return
	}

	view, err := h.dashboardService.LoadDashboard(sessionKey, userID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound),
			errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrStaleSnapshot):
			apierrors.StaleReference(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to load dashboard")
		}
		return
	}

	// The client renders a plain copy of the view, never the typed structs.
	c.JSON(http.StatusOK, dto.Normalize(view))
}

// TogglePanel flips one dashboard panel and returns its new visibility.
func (h *DashboardHandler) TogglePanel(c *gin.Context) {
	sessionKey, exists := middleware.GetSessionKey(c)
	if !exists {
		apierrors.Unauthorized(c, "Session not initialized")
		return
	}

	panel := sessionstore.Panel(c.Param("panel"))
	snap := h.snapshots.Get(sessionKey)

	open, err := snap.TogglePanel(panel)
	if err != nil {
		apierrors.BadRequest(c, "Unknown panel")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"panel": panel,
		"open":  open,
	})
}

// GetPanels returns the current panel visibility and snapshot state.
func (h *DashboardHandler) GetPanels(c *gin.Context) {
	sessionKey, exists := middleware.GetSessionKey(c)
	if !exists {
		apierrors.Unauthorized(c, "Session not initialized")
		return
	}

	snap := h.snapshots.Get(sessionKey)

	c.JSON(http.StatusOK, gin.H{
		"state":  snap.State(),
		"panels": snap.Panels(),
	})
}
