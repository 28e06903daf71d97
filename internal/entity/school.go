package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SchoolRoleAdmin  = "admin"
	SchoolRoleMember = "member"

	PermissionPostNews = "post_news"
)

type School struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Address   string
	LogoURL   string
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type SchoolMember struct {
	ID        int64     `gorm:"primaryKey"`
	SchoolID  uuid.UUID `gorm:"not null;uniqueIndex:idx_school_member"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_school_member"`
	Role      string    `gorm:"not null;default:'member'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// SchoolPermission grants a named capability to a user within a school,
// independent of their member role.
type SchoolPermission struct {
	ID         int64     `gorm:"primaryKey"`
	SchoolID   uuid.UUID `gorm:"not null;uniqueIndex:idx_school_permission"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_school_permission"`
	Permission string    `gorm:"not null;uniqueIndex:idx_school_permission"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
