package class_dto

import "time"

type ClassResponse struct {
	ID       string `json:"id"`
	SchoolID string `json:"school_id"`
	Name     string `json:"name"`
}

type ClassMemberResponse struct {
	UserID            string `json:"user_id"`
	Username          string `json:"username"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Role              string `json:"role"`
	CanPostNews       bool   `json:"can_post_news"`
	CanCreateGroups   bool   `json:"can_create_groups"`
	CanDeleteMessages bool   `json:"can_delete_messages"`
}

type GroupResponse struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupMemberResponse struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}
