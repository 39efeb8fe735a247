package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Code        string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	DueAt       *time.Time     `json:"due_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members       []Member       `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks         []Task         `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Files         []File         `gorm:"foreignKey:ProjectID" json:"files,omitempty"`
	Announcements []Announcement `gorm:"foreignKey:ProjectID" json:"announcements,omitempty"`
	Suggestions   []Suggestion   `gorm:"foreignKey:ProjectID" json:"suggestions,omitempty"`
	Messages      []Message      `gorm:"foreignKey:ProjectID" json:"messages,omitempty"`
}
