package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClassRoleTeacher = "teacher"
	ClassRoleParent  = "parent"
	ClassRoleStudent = "student"
)

type Class struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	SchoolID  uuid.UUID `gorm:"not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ClassMembership attaches a user to a class with a role and capability
// flags. Lookups use First and tolerate duplicate rows; uniqueness per
// (class, user) is not enforced at the schema level.
type ClassMembership struct {
	ID                int64     `gorm:"primaryKey"`
	ClassID           uuid.UUID `gorm:"not null;index"`
	UserID            string    `gorm:"not null;index"`
	Role              string    `gorm:"not null"`
	CanPostNews       bool      `gorm:"not null;default:false"`
	CanCreateGroups   bool      `gorm:"not null;default:false"`
	CanDeleteMessages bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

type ClassPermission struct {
	ID         int64     `gorm:"primaryKey"`
	ClassID    uuid.UUID `gorm:"not null;uniqueIndex:idx_class_permission"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_class_permission"`
	Permission string    `gorm:"not null;uniqueIndex:idx_class_permission"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
