package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/collab-dashboard-api/internal/database"
	"github.com/yukikurage/collab-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/collab-dashboard-api/internal/errors"
	"github.com/yukikurage/collab-dashboard-api/internal/middleware"
	"github.com/yukikurage/collab-dashboard-api/internal/models"
	"github.com/yukikurage/collab-dashboard-api/internal/repository"
	"github.com/yukikurage/collab-dashboard-api/internal/services"
	"github.com/yukikurage/collab-dashboard-api/internal/utils"
)

// MessageHandler serves the project message history. There is no realtime
// transport; messages are listed and posted over plain HTTP.
type MessageHandler struct {
	messageRepo   repository.MessageRepository
	memberService *services.MemberService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageRepo repository.MessageRepository, memberService *services.MemberService) *MessageHandler {
	return &MessageHandler{
		messageRepo:   messageRepo,
		memberService: memberService,
	}
}

// ListMessages returns project messages, oldest first, paginated.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if _, err := h.memberService.RequireMembership(projectID, userID); err != nil {
		// Return 404 instead of 403 to avoid leaking project existence
		apierrors.NotFound(c, "Project not found")
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().
		Model(&models.Message{}).
		Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to count messages")
		return
	}

	var messages []models.Message
	if err := query.
		Order("created_at ASC").
		Scopes(database.Paginate(params)).
		Find(&messages).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":   dto.ToMessageVMs(messages),
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

// PostMessage appends a message to the project history.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	member, err := h.memberService.RequireMembership(projectID, userID)
	if err != nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	type PostMessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		apierrors.BadRequest(c, "Message content is required")
		return
	}

	message := &models.Message{
		ProjectID: projectID,
		MemberID:  member.ID,
		Content:   strings.TrimSpace(req.Content),
	}

	if err := h.messageRepo.Create(message); err != nil {
		apierrors.InternalError(c, "Failed to post message")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageVM(*message))
}
