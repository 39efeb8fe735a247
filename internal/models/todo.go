package models

import (
	"time"

	"gorm.io/gorm"
)

// Todo is an ordered sub-item of a Task. Position keeps the original ordering.
type Todo struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	TaskID    uint64         `gorm:"not null" json:"task_id"`
	Name      string         `gorm:"not null" json:"name"`
	Done      bool           `gorm:"not null;default:false" json:"done"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
