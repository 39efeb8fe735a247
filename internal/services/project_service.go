package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/collab-dashboard-api/internal/models"
	"github.com/yukikurage/collab-dashboard-api/internal/repository"
	"github.com/yukikurage/collab-dashboard-api/internal/session"
	"github.com/yukikurage/collab-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectDeleteFailed = errors.New("failed to delete project in the store of record")
	ErrCodeGenFailed       = errors.New("failed to generate project code")
	ErrTaskNameRequired    = errors.New("task name is required")
)

// ProjectService handles the project lifecycle operations the dashboard
// exposes: deletion, share code regeneration, and task creation.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	memberRepo  repository.MemberRepository
	sessions    *session.Store
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, memberRepo repository.MemberRepository, sessions *session.Store) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		sessions:    sessions,
	}
}

// DeleteProject removes a project. The cascade delete must commit before the
// session snapshot is cleared; on failure the caller stays on the dashboard.
func (s *ProjectService) DeleteProject(sessionKey string, projectID, actorUserID uint64) error {
	if _, err := s.memberRepo.FindByProjectAndUser(projectID, actorUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Non-members read the project as absent.
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to verify membership: %w", err)
	}

	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	// A vanished project is permanent; only transient write errors are retried.
	cfg := utils.DefaultRetry
	cfg.RetryIf = func(err error) bool {
		return !errors.Is(err, gorm.ErrRecordNotFound)
	}
	err := utils.Retry(cfg, func() error {
		return s.projectRepo.Delete(projectID)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProjectDeleteFailed, err)
	}

	snap := s.sessions.Get(sessionKey)
	if err := snap.DeleteProject(projectID); errors.Is(err, session.ErrStaleReference) {
		snap.BeginHydration()
	}

	return nil
}

// RegenerateCode replaces the project's share code.
func (s *ProjectService) RegenerateCode(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	code, err := utils.GenerateProjectCode()
	if err != nil {
		return nil, ErrCodeGenFailed
	}

	project.Code = code
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project code: %w", err)
	}

	return project, nil
}

// CreateTaskInput represents input for creating a task with its todos.
type CreateTaskInput struct {
	ProjectID   uint64
	MemberID    uint64
	Name        string
	Description string
	Todos       []string
}

// CreateTask creates a task with ordered todos inside a project.
func (s *ProjectService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTaskNameRequired
	}

	member, err := s.memberRepo.FindByID(input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member.ProjectID != input.ProjectID || !member.Active {
		return nil, ErrNotProjectMember
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		MemberID:    input.MemberID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      models.TaskStatusTodo,
	}

	for i, name := range input.Todos {
		if strings.TrimSpace(name) == "" {
			continue
		}
		task.Todos = append(task.Todos, models.Todo{
			Name:     strings.TrimSpace(name),
			Position: i,
		})
	}

	if err := s.projectRepo.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}
