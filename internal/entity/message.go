package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageStatusSent = "SENT"
	MessageStatusSeen = "SEEN"
)

// Message supports one level of reply nesting: ParentMessageID may only
// point at a top-level message of the same thread. Read state lives in
// MessageReadStatus rows; the SENT/SEEN status is derived at read time,
// never stored.
type Message struct {
	ID              uuid.UUID  `gorm:"primaryKey"`
	ThreadID        uuid.UUID  `gorm:"not null;index"`
	SenderID        string     `gorm:"not null"`
	Content         string     `gorm:"not null"`
	ParentMessageID *uuid.UUID `gorm:"index"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// MessageReadStatus is a per-(message, user) receipt.
type MessageReadStatus struct {
	ID        int64     `gorm:"primaryKey"`
	MessageID uuid.UUID `gorm:"not null;uniqueIndex:idx_message_read"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_message_read"`
	ReadAt    time.Time `gorm:"autoCreateTime"`
}
