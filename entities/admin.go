package entities

import (
	"github.com/google/uuid"
)

type Admin struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username       string    `gorm:"uniqueIndex" json:"username"`
	HashedPassword string    `json:"-"`
	IsSuperuser    bool      `json:"is_superuser"`

	Timestamp
}
