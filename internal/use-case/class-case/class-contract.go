package class_service

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/class_dto"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
)

type ClassServiceContract interface {
	ListClasses(ctx context.Context, userID string) ([]class_dto.ClassResponse, *app_error.AppError)
	ListClassMembers(ctx context.Context, userID, classID string) ([]class_dto.ClassMemberResponse, *app_error.AppError)
	ListGroups(ctx context.Context, userID, classID string) ([]class_dto.GroupResponse, *app_error.AppError)
	CreateGroup(ctx context.Context, req class_dto.CreateGroupRequest, userID, classID string) (*class_dto.GroupResponse, *app_error.AppError)
	AddGroupMember(ctx context.Context, req class_dto.AddGroupMemberRequest, userID, groupID string) (*class_dto.GroupMemberResponse, *app_error.AppError)
}
