package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/collab-dashboard-api/internal/dto"
	"github.com/yukikurage/collab-dashboard-api/internal/repository"
	"github.com/yukikurage/collab-dashboard-api/internal/session"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrStaleSnapshot   = errors.New("session snapshot does not match the requested route")
)

// DashboardService assembles the dashboard view: fetch the relational graph,
// normalize it into view models, hydrate the session snapshot, and derive the
// display fields.
type DashboardService struct {
	userRepo    repository.UserRepository
	memberRepo  repository.MemberRepository
	projectRepo repository.ProjectRepository
	messageRepo repository.MessageRepository
	sessions    *session.Store
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	projectRepo repository.ProjectRepository,
	messageRepo repository.MessageRepository,
	sessions *session.Store,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		memberRepo:  memberRepo,
		projectRepo: projectRepo,
		messageRepo: messageRepo,
		sessions:    sessions,
	}
}

// LoadDashboard builds the dashboard for a (user, member) route pair. Any
// absent entity surfaces as a not-found error, never as a blank view.
func (s *DashboardService) LoadDashboard(sessionKey string, userID, memberID uint64) (*dto.DashboardView, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member.UserID != userID {
		// Mismatched pairs read as absent so membership is not leaked.
		return nil, ErrMemberNotFound
	}

	user, err := s.userRepo.FindByIDWithMemberships(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	project, err := s.projectRepo.FindByIDWithRelations(member.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	messages, err := s.messageRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	// Normalize into plain view models.
	userVM := dto.ToUserVM(*user)
	userVM.Members = make([]dto.MemberVM, len(user.Members))
	for i, m := range user.Members {
		vm := dto.ToMemberVM(m)
		if vm.Project != nil {
			memberCount, taskCount, err := s.projectRepo.Counts(m.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("failed to count project records: %w", err)
			}
			vm.Project.MemberCount = memberCount
			vm.Project.TaskCount = taskCount
		}
		userVM.Members[i] = vm
	}

	memberVM := dto.ToMemberVM(*member)
	tasksAssigned, err := s.memberRepo.CountTasksAssigned(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assigned tasks: %w", err)
	}
	memberVM.TasksAssigned = tasksAssigned

	projectVM := dto.ToProjectVM(*project, true)
	messageVMs := dto.ToMessageVMs(messages)

	// Hydrate the session snapshot and verify the route invariant.
	snap := s.sessions.Get(sessionKey)
	snap.BeginHydration()
	snap.ReadUser(userVM)
	snap.ReadMember(memberVM)
	snap.ReadProject(projectVM)
	snap.ReadMessages(messageVMs)
	if err := snap.CompleteHydration(); err != nil {
		return nil, ErrStaleSnapshot
	}

	view := &dto.DashboardView{
		User:              userVM,
		Member:            memberVM,
		Project:           projectVM,
		Messages:          messageVMs,
		TaskCount:         len(project.Tasks),
		FileCount:         len(project.Files),
		AnnouncementCount: len(project.Announcements),
		SuggestionCount:   len(project.Suggestions),
		Completeness:      dto.Completeness(project.Tasks),
		Timeline:          dto.FormatTimeline(project.CreatedAt, project.DueAt),
	}

	return view, nil
}
