package thread_dto

type CreateDirectThreadRequest struct {
	OtherUserID string `json:"otherUserId" validate:"required"`
}

type SendMessageRequest struct {
	Content         string  `json:"content" validate:"required,min=1"`
	ParentMessageID *string `json:"parentMessageId,omitempty" validate:"omitempty,uuid"`
}

// GetMessagesQuery comes from query parameters, not the body.
type GetMessagesQuery struct {
	Limit  int `validate:"omitempty,min=1,max=100"`
	Offset int `validate:"omitempty,min=0"`
}
