package news_dto

import "time"

type NewsResponse struct {
	ID          string               `json:"id"`
	SchoolID    *string              `json:"school_id,omitempty"`
	ClassID     *string              `json:"class_id,omitempty"`
	AuthorID    string               `json:"author_id"`
	Type        string               `json:"type"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Attachments []string             `json:"attachments"`
	PublishedAt time.Time            `json:"published_at"`
	LikeCount   int64                `json:"like_count"`
	Liked       bool                 `json:"liked"`
	Options     []PollOptionResponse `json:"options,omitempty"`
}

type PollOptionResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Position  int    `json:"position"`
	VoteCount int64  `json:"vote_count"`
	Voted     bool   `json:"voted"`
}

type LikeResponse struct {
	NewsID string `json:"news_id"`
	Liked  bool   `json:"liked"`
}

const (
	VoteAdded   = "added"
	VoteMoved   = "moved"
	VoteRemoved = "removed"
)

type VoteResponse struct {
	PollOptionID string `json:"poll_option_id"`
	Result       string `json:"result"`
}

type NewsPermissionsResponse struct {
	CanPostNews bool `json:"can_post_news"`
}
