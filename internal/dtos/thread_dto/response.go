package thread_dto

import "time"

type ThreadResponse struct {
	ThreadID       string    `json:"thread_id"`
	Kind           string    `json:"kind"`
	GroupID        *string   `json:"group_id,omitempty"`
	ClassID        *string   `json:"class_id,omitempty"`
	ParticipantIDs []string  `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type MessageResponse struct {
	MessageID       string            `json:"message_id"`
	ThreadID        string            `json:"thread_id"`
	SenderID        string            `json:"sender_id"`
	Content         string            `json:"content"`
	ParentMessageID *string           `json:"parent_message_id,omitempty"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	Replies         []MessageResponse `json:"replies,omitempty"`
	ReplyCount      int               `json:"reply_count"`
}

type GetMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type PollResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type MarkReadResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}
