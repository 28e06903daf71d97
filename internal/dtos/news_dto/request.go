package news_dto

type CreateNewsRequest struct {
	SchoolID    *string  `json:"schoolId,omitempty" validate:"omitempty,uuid"`
	ClassID     *string  `json:"classId,omitempty" validate:"omitempty,uuid"`
	Type        string   `json:"type" validate:"required,oneof=announcement poll"`
	Title       string   `json:"title" validate:"required,min=1"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty" validate:"omitempty,dive,min=1"`
	PollOptions []string `json:"pollOptions,omitempty" validate:"omitempty,min=2,dive,min=1"`
}
