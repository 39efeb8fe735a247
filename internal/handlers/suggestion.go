package handlers

import (
	"errors"

	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/collab-dashboard-api/internal/errors"
	"github.com/yukikurage/collab-dashboard-api/internal/middleware"
	"github.com/yukikurage/collab-dashboard-api/internal/services"
)

// SuggestionHandler drafts project suggestions from free text.
type SuggestionHandler struct {
	suggestionService *services.SuggestionService
	memberService     *services.MemberService
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestionService *services.SuggestionService, memberService *services.MemberService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		memberService:     memberService,
	}
}

// DraftSuggestions turns free-form notes into suggestion drafts for a project.
func (h *SuggestionHandler) DraftSuggestions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type DraftRequest struct {
		ProjectID   uint64 `json:"project_id" binding:"required"`
		ProjectName string `json:"project_name"`
		Text        string `json:"text" binding:"required"`
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.memberService.RequireMembership(req.ProjectID, userID); err != nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	drafts, err := h.suggestionService.DraftSuggestions(c.Request.Context(), req.ProjectName, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, err.Error())
		case errors.Is(err, services.ErrAINoSuggestions),
			errors.Is(err, services.ErrAINoValidSuggestions):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to draft suggestions")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": drafts,
	})
}
