package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ThreadKindDirect       = "direct"
	ThreadKindGroup        = "group"
	ThreadKindClassChannel = "class_channel"
)

// Thread is a conversation container. A direct thread links exactly two
// users and is deduplicated by DirectKey; group and class_channel
// threads are unique per group/class through their FK indexes.
type Thread struct {
	ID        uuid.UUID  `gorm:"primaryKey"`
	Kind      string     `gorm:"not null"`
	GroupID   *uuid.UUID `gorm:"uniqueIndex"`
	ClassID   *uuid.UUID `gorm:"uniqueIndex"`
	DirectKey *string    `gorm:"uniqueIndex"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	Participants []ThreadParticipant `gorm:"foreignKey:ThreadID;references:ID"`
}

// ThreadParticipant rows for group/class threads are a snapshot of the
// membership at creation time; they are not kept in sync with later
// membership changes.
type ThreadParticipant struct {
	ID       int64     `gorm:"primaryKey"`
	ThreadID uuid.UUID `gorm:"not null;uniqueIndex:idx_thread_participant"`
	UserID   string    `gorm:"not null;uniqueIndex:idx_thread_participant"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

// DirectThreadKey canonicalizes an unordered user pair so concurrent
// creators collide on the unique index instead of racing.
func DirectThreadKey(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}
