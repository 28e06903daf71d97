package entity

import (
	"time"

	"github.com/google/uuid"
)

// Group is a named channel inside a class. Only members whose class
// membership carries CanCreateGroups may create one.
type Group struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	ClassID     uuid.UUID `gorm:"not null;index"`
	OwnerID     string    `gorm:"not null"`
	Name        string    `gorm:"not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type GroupMembership struct {
	ID        int64     `gorm:"primaryKey"`
	GroupID   uuid.UUID `gorm:"not null;uniqueIndex:idx_group_member"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_group_member"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}
