package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	OwnerID    uint64         `gorm:"not null;index" json:"owner_id"`
	ProjectID  *uint64        `gorm:"index" json:"project_id"`
	AssigneeID *uint64        `gorm:"index" json:"assignee_id"`
	DueDate    *time.Time     `gorm:"index" json:"due_date"`
	Completed  bool           `gorm:"not null;default:false" json:"completed"`
	IsMissed   bool           `gorm:"not null;default:false" json:"is_missed"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User    `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
