package repository

import (
	"github.com/yukikurage/collab-dashboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByIDWithMemberships finds a user with members and their projects preloaded
	FindByIDWithMemberships(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new membership
	Create(member *models.Member) error

	// FindByID finds a member by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Member, error)

	// FindByProjectAndUser finds the membership row for a (project, user) pair
	FindByProjectAndUser(projectID, userID uint64) (*models.Member, error)

	// ListAll lists every membership row (used to warm the route pair cache)
	ListAll() ([]models.Member, error)

	// SetActive updates the active flag of a member
	SetActive(id uint64, active bool) error

	// CountTasksAssigned counts tasks created by or assigned to a member
	CountTasksAssigned(memberID uint64) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByIDWithRelations loads the full dashboard graph:
	// members (with users), tasks (with ordered todos), suggestions, files,
	// announcements
	FindByIDWithRelations(id uint64) (*models.Project, error)

	// FindByCode finds a project by its share code
	FindByCode(code string) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and every dependent record in one transaction
	Delete(id uint64) error

	// Counts returns the member and task counts for a project
	Counts(id uint64) (members int64, tasks int64, err error)

	// CreateTask creates a task with its todos inside the project
	CreateTask(task *models.Task) error
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// ListByProject lists project messages oldest first
	ListByProject(projectID uint64) ([]models.Message, error)

	// Create creates a message
	Create(message *models.Message) error
}
