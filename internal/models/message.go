package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ProjectID uint64         `gorm:"not null" json:"project_id"`
	MemberID  uint64         `gorm:"not null" json:"member_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
