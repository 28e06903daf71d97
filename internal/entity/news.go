package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	NewsTypeAnnouncement = "announcement"
	NewsTypePoll         = "poll"
)

// NewsPost is scoped to exactly one of a school or a class.
type NewsPost struct {
	ID          uuid.UUID  `gorm:"primaryKey"`
	SchoolID    *uuid.UUID `gorm:"index"`
	ClassID     *uuid.UUID `gorm:"index"`
	AuthorID    string     `gorm:"not null"`
	Type        string     `gorm:"not null"`
	Title       string     `gorm:"not null"`
	Content     string
	PublishedAt time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Attachments []NewsAttachment `gorm:"foreignKey:NewsPostID;references:ID"`
	Options     []PollOption     `gorm:"foreignKey:NewsPostID;references:ID"`
}

type NewsAttachment struct {
	ID         int64     `gorm:"primaryKey"`
	NewsPostID uuid.UUID `gorm:"not null;index"`
	URL        string    `gorm:"not null"`
}

type PollOption struct {
	ID         uuid.UUID `gorm:"primaryKey"`
	NewsPostID uuid.UUID `gorm:"not null;index"`
	Text       string    `gorm:"not null"`
	Position   int       `gorm:"not null"`
}

// PollVote carries the poll id redundantly so a single unique index
// enforces one vote per (poll, user).
type PollVote struct {
	ID           int64     `gorm:"primaryKey"`
	NewsPostID   uuid.UUID `gorm:"not null;uniqueIndex:idx_poll_vote"`
	PollOptionID uuid.UUID `gorm:"not null;index"`
	UserID       string    `gorm:"not null;uniqueIndex:idx_poll_vote"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type NewsLike struct {
	ID         int64     `gorm:"primaryKey"`
	NewsPostID uuid.UUID `gorm:"not null;uniqueIndex:idx_news_like"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_news_like"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
