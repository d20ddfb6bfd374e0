package models

import "time"

type ActivityLog struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ActorID    uint64    `gorm:"not null;index" json:"actor_id"`
	Action     string    `gorm:"type:varchar(50);not null" json:"action"`
	EntityType string    `gorm:"type:varchar(20);not null" json:"entity_type"`
	EntityID   uint64    `gorm:"not null" json:"entity_id"`
	CreatedAt  time.Time `json:"created_at"`
}
