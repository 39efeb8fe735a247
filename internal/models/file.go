package models

import (
	"time"

	"gorm.io/gorm"
)

type File struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ProjectID uint64         `gorm:"not null" json:"project_id"`
	MemberID  uint64         `gorm:"not null" json:"member_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	URL       string         `gorm:"type:varchar(512);not null" json:"url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
