package class_dto

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

type AddGroupMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}
