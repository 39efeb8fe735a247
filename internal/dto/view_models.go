package dto

import (
	"time"

	"github.com/yukikurage/collab-dashboard-api/internal/models"
)

// UserVM represents a user in dashboard responses
type UserVM struct {
	ID        uint64     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Image     *string    `json:"image"`
	Members   []MemberVM `json:"members,omitempty"`
}

// MemberVM represents a project membership in dashboard responses
type MemberVM struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"user_id"`
	ProjectID     uint64     `json:"project_id"`
	Active        bool       `json:"active"`
	TasksAssigned int64      `json:"tasks_assigned"`
	JoinedAt      string     `json:"joined_at"`
	User          *UserVM    `json:"user,omitempty"`
	Project       *ProjectVM `json:"project,omitempty"`
}

// ProjectVM represents a project in dashboard responses
type ProjectVM struct {
	ID            uint64           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Code          string           `json:"code,omitempty"`
	CreatedAt     string           `json:"created_at"`
	DueAt         *string          `json:"due_at"`
	MemberCount   int64            `json:"member_count"`
	TaskCount     int64            `json:"task_count"`
	Members       []MemberVM       `json:"members,omitempty"`
	Tasks         []TaskVM         `json:"tasks,omitempty"`
	Files         []FileVM         `json:"files,omitempty"`
	Announcements []AnnouncementVM `json:"announcements,omitempty"`
	Suggestions   []SuggestionVM   `json:"suggestions,omitempty"`
}

// TaskVM represents a task with its ordered todos
type TaskVM struct {
	ID          uint64   `json:"id"`
	ProjectID   uint64   `json:"project_id"`
	MemberID    uint64   `json:"member_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	DueAt       *string  `json:"due_at"`
	CreatedAt   string   `json:"created_at"`
	Todos       []TodoVM `json:"todos,omitempty"`
}

// TodoVM represents a task sub-item
type TodoVM struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Position int    `json:"position"`
}

// MessageVM represents a project message
type MessageVM struct {
	ID        uint64 `json:"id"`
	ProjectID uint64 `json:"project_id"`
	MemberID  uint64 `json:"member_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// FileVM represents a shared file entry
type FileVM struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AnnouncementVM represents an announcement entry
type AnnouncementVM struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SuggestionVM represents a suggestion entry
type SuggestionVM struct {
	ID      uint64 `json:"id"`
	Content string `json:"content"`
}

// Conversion functions

// ToUserVM converts a User model to UserVM without memberships
func ToUserVM(user models.User) UserVM {
	return UserVM{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Image:     user.Image,
	}
}

// ToMemberVM converts a Member model to MemberVM
func ToMemberVM(member models.Member) MemberVM {
	vm := MemberVM{
		ID:        member.ID,
		UserID:    member.UserID,
		ProjectID: member.ProjectID,
		Active:    member.Active,
		JoinedAt:  formatTime(member.JoinedAt),
	}

	// Include user if preloaded
	if member.User.ID != 0 {
		user := ToUserVM(member.User)
		vm.User = &user
	}

	// Include project if preloaded
	if member.Project.ID != 0 {
		project := ToProjectVM(member.Project, false)
		vm.Project = &project
	}

	return vm
}

// ToProjectVM converts a Project model to ProjectVM. The share code is only
// included when includeCode is set.
func ToProjectVM(project models.Project, includeCode bool) ProjectVM {
	vm := ProjectVM{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   formatTime(project.CreatedAt),
		DueAt:       formatTimePtr(project.DueAt),
	}
	if includeCode {
		vm.Code = project.Code
	}

	if len(project.Members) > 0 {
		vm.Members = make([]MemberVM, len(project.Members))
		for i, member := range project.Members {
			vm.Members[i] = ToMemberVM(member)
		}
		vm.MemberCount = int64(len(project.Members))
	}

	if len(project.Tasks) > 0 {
		vm.Tasks = make([]TaskVM, len(project.Tasks))
		for i, task := range project.Tasks {
			vm.Tasks[i] = ToTaskVM(task)
		}
		vm.TaskCount = int64(len(project.Tasks))
	}

	if len(project.Files) > 0 {
		vm.Files = make([]FileVM, len(project.Files))
		for i, file := range project.Files {
			vm.Files[i] = FileVM{ID: file.ID, Name: file.Name, URL: file.URL}
		}
	}

	if len(project.Announcements) > 0 {
		vm.Announcements = make([]AnnouncementVM, len(project.Announcements))
		for i, a := range project.Announcements {
			vm.Announcements[i] = AnnouncementVM{ID: a.ID, Title: a.Title, Content: a.Content}
		}
	}

	if len(project.Suggestions) > 0 {
		vm.Suggestions = make([]SuggestionVM, len(project.Suggestions))
		for i, s := range project.Suggestions {
			vm.Suggestions[i] = SuggestionVM{ID: s.ID, Content: s.Content}
		}
	}

	return vm
}

// ToTaskVM converts a Task model to TaskVM
func ToTaskVM(task models.Task) TaskVM {
	vm := TaskVM{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		MemberID:    task.MemberID,
		Name:        task.Name,
		Description: task.Description,
		Status:      string(task.Status),
		DueAt:       formatTimePtr(task.DueAt),
		CreatedAt:   formatTime(task.CreatedAt),
	}

	if len(task.Todos) > 0 {
		vm.Todos = make([]TodoVM, len(task.Todos))
		for i, todo := range task.Todos {
			vm.Todos[i] = TodoVM{
				ID:       todo.ID,
				Name:     todo.Name,
				Done:     todo.Done,
				Position: todo.Position,
			}
		}
	}

	return vm
}

// ToMessageVM converts a Message model to MessageVM
func ToMessageVM(message models.Message) MessageVM {
	return MessageVM{
		ID:        message.ID,
		ProjectID: message.ProjectID,
		MemberID:  message.MemberID,
		Content:   message.Content,
		CreatedAt: formatTime(message.CreatedAt),
	}
}

// ToMessageVMs converts a message slice to view models
func ToMessageVMs(messages []models.Message) []MessageVM {
	vms := make([]MessageVM, len(messages))
	for i, message := range messages {
		vms[i] = ToMessageVM(message)
	}
	return vms
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
