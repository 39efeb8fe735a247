package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/collab-dashboard-api/internal/models"
	"github.com/yukikurage/collab-dashboard-api/internal/repository"
	"github.com/yukikurage/collab-dashboard-api/internal/session"
	"github.com/yukikurage/collab-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidProjectCode   = errors.New("invalid project code")
	ErrAlreadyProjectMember = errors.New("user is already an active member of this project")
	ErrLeaveWriteFailed     = errors.New("failed to record leave in the store of record")
	ErrNotProjectMember     = errors.New("user is not a member of this project")
)

// MemberService manages the membership lifecycle: joining by project code and
// leaving, which deactivates the membership rather than deleting it.
type MemberService struct {
	memberRepo  repository.MemberRepository
	projectRepo repository.ProjectRepository
	sessions    *session.Store
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo repository.MemberRepository, projectRepo repository.ProjectRepository, sessions *session.Store) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		projectRepo: projectRepo,
		sessions:    sessions,
	}
}

// LeaveProject sets the member's active flag to false. The store-of-record
// write must succeed before the session snapshot is touched; the caller only
// navigates away on a nil return.
func (s *MemberService) LeaveProject(sessionKey string, memberID, actorUserID uint64) error {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}
	if member.UserID != actorUserID {
		return ErrMemberNotFound
	}

	// A missing row is permanent; only transient write errors are retried.
	cfg := utils.DefaultRetry
	cfg.RetryIf = func(err error) bool {
		return !errors.Is(err, repository.ErrMemberRowMissing)
	}
	err = utils.Retry(cfg, func() error {
		return s.memberRepo.SetActive(memberID, false)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLeaveWriteFailed, err)
	}

	snap := s.sessions.Get(sessionKey)
	err = snap.UpdateMember(session.Patch{ID: memberID, Key: "active", Value: false})
	if errors.Is(err, session.ErrStaleReference) {
		// The snapshot held a different member; invalidate it so the next
		// dashboard load rebuilds from the store of record.
		snap.BeginHydration()
	}

	return nil
}

// JoinProject adds the user to a project via its share code. A previously
// deactivated membership is reactivated instead of duplicated.
func (s *MemberService) JoinProject(userID uint64, code string) (*models.Member, error) {
	project, err := s.projectRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidProjectCode
		}
		return nil, fmt.Errorf("failed to find project by code: %w", err)
	}

	existing, err := s.memberRepo.FindByProjectAndUser(project.ID, userID)
	if err == nil {
		if existing.Active {
			return nil, ErrAlreadyProjectMember
		}
		if err := s.memberRepo.SetActive(existing.ID, true); err != nil {
			return nil, fmt.Errorf("failed to reactivate membership: %w", err)
		}
		existing.Active = true
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.Member{
		UserID:    userID,
		ProjectID: project.ID,
		Active:    true,
		JoinedAt:  time.Now(),
	}

	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return member, nil
}

// RequireMembership returns the active membership linking a user to a project.
func (s *MemberService) RequireMembership(projectID, userID uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByProjectAndUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotProjectMember
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if !member.Active {
		return nil, ErrNotProjectMember
	}
	return member, nil
}
