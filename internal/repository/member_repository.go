package repository

import (
	"errors"

	"github.com/yukikurage/collab-dashboard-api/internal/models"
	"gorm.io/gorm"
)

// ErrMemberRowMissing is returned when an update matched no member row.
var ErrMemberRowMissing = errors.New("member repository: no member row matched")

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new membership
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID with optional preloading
func (r *GormMemberRepository) FindByID(id uint64, preload ...string) (*models.Member, error) {
	var member models.Member
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&member, id).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

// FindByProjectAndUser finds the membership row for a (project, user) pair
func (r *GormMemberRepository) FindByProjectAndUser(projectID, userID uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListAll lists every membership row
func (r *GormMemberRepository) ListAll() ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// SetActive updates the active flag of a member
func (r *GormMemberRepository) SetActive(id uint64, active bool) error {
	result := r.db.Model(&models.Member{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberRowMissing
	}
	return nil
}

// CountTasksAssigned counts the tasks created by the member
func (r *GormMemberRepository) CountTasksAssigned(memberID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}
