package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill is one entry of the fixed priceable-service catalog
// (translation, proofreading, editing, and so on).
type Skill struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
