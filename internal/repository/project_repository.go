package repository

import (
	"github.com/yukikurage/collab-dashboard-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithRelations loads the full dashboard graph in one query tree
func (r *GormProjectRepository) FindByIDWithRelations(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Preload("Members").
		Preload("Members.User").
		Preload("Tasks").
		Preload("Tasks.Todos", func(db *gorm.DB) *gorm.DB {
			return db.Order("todos.position ASC")
		}).
		Preload("Suggestions").
		Preload("Files").
		Preload("Announcements").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByCode finds a project by its share code
func (r *GormProjectRepository) FindByCode(code string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("code = ?", code).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and all dependent records in a transaction.
// No member, task, or todo may be left referencing a removed project.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Todo{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.File{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Announcement{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Suggestion{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// Counts returns the member and task counts for a project
func (r *GormProjectRepository) Counts(id uint64) (int64, int64, error) {
	var members, tasks int64
	if err := r.db.Model(&models.Member{}).Where("project_id = ?", id).Count(&members).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.Task{}).Where("project_id = ?", id).Count(&tasks).Error; err != nil {
		return 0, 0, err
	}
	return members, tasks, nil
}

// CreateTask creates a task together with its todos
func (r *GormProjectRepository) CreateTask(task *models.Task) error {
	return r.db.Create(task).Error
}
