package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/collab-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/collab-dashboard-api/internal/errors"
	"github.com/yukikurage/collab-dashboard-api/internal/middleware"
	"github.com/yukikurage/collab-dashboard-api/internal/services"
)

// ProjectHandler serves the project lifecycle actions reachable from the
// dashboard options menu.
type ProjectHandler struct {
	projectService *services.ProjectService
	memberService  *services.MemberService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, memberService *services.MemberService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		memberService:  memberService,
	}
}

// DeleteProject removes a project. The response is sent only after the cascade
// delete committed; on failure the client must stay on the dashboard.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, userID, sessionKey, ok := h.requireProjectRequest(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(sessionKey, projectID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrProjectDeleteFailed):
			apierrors.StoreWriteFailure(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete project")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// LeaveProject deactivates the caller's membership. Active stays false in the
// store of record before the client is told to navigate away.
func (h *ProjectHandler) LeaveProject(c *gin.Context) {
	projectID, userID, sessionKey, ok := h.requireProjectRequest(c)
	if !ok {
		return
	}

	member, err := h.memberService.RequireMembership(projectID, userID)
	if err != nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	if err := h.memberService.LeaveProject(sessionKey, member.ID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrLeaveWriteFailed):
			apierrors.StoreWriteFailure(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to leave project")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Left project",
	})
}

// JoinProject adds the caller to a project via its share code.
func (h *ProjectHandler) JoinProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		Code string `json:"code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.JoinProject(userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProjectCode):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrAlreadyProjectMember):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to join project")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined project",
		"member":  dto.ToMemberVM(*member),
	})
}

// RegenerateCode replaces the project share code shown in the copy-code modal.
func (h *ProjectHandler) RegenerateCode(c *gin.Context) {
	projectID, userID, _, ok := h.requireProjectRequest(c)
	if !ok {
		return
	}

	if _, err := h.memberService.RequireMembership(projectID, userID); err != nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	project, err := h.projectService.RegenerateCode(projectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to regenerate code")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": project.Code,
	})
}

// CreateTask creates a task with its todos inside the project.
func (h *ProjectHandler) CreateTask(c *gin.Context) {
	projectID, userID, _, ok := h.requireProjectRequest(c)
	if !ok {
		return
	}

	member, err := h.memberService.RequireMembership(projectID, userID)
	if err != nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	type CreateTaskRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Todos       []string `json:"todos"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.projectService.CreateTask(services.CreateTaskInput{
		ProjectID:   projectID,
		MemberID:    member.ID,
		Name:        req.Name,
		Description: req.Description,
		Todos:       req.Todos,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNameRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotProjectMember),
			errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, "Project not found")
		default:
			apierrors.InternalError(c, "Failed to create task")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskVM(*task))
}

// requireProjectRequest parses the project id and pulls the authenticated
// user and snapshot key out of the context.
func (h *ProjectHandler) requireProjectRequest(c *gin.Context) (projectID, userID uint64, sessionKey string, ok bool) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return 0, 0, "", false
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, "", false
	}

	sessionKey, _ = middleware.GetSessionKey(c)
	return projectID, userID, sessionKey, true
}
