package entity

import (
	"time"
)

// User mirrors the identity provider's view of a person. Rows are
// upserted from token claims on every authenticated request and are
// never deleted by the application.
type User struct {
	ID        string `gorm:"primaryKey"` // token subject
	Username  string `gorm:"uniqueIndex"`
	FirstName string
	LastName  string
	Email     string
	Phone     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
