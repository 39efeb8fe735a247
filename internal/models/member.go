package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is the join entity between a User and a Project. Leaving a project
// flips Active to false; the row itself is retained.
type Member struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null;uniqueIndex:idx_members_user_project" json:"user_id"`
	ProjectID uint64         `gorm:"not null;uniqueIndex:idx_members_user_project" json:"project_id"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	JoinedAt  time.Time      `json:"joined_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tasks   []Task  `gorm:"foreignKey:MemberID" json:"tasks,omitempty"`
}
