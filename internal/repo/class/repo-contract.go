package class_repo

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/google/uuid"
)

type ClassRepoContract interface {
	FindClassByID(ctx context.Context, classID uuid.UUID) (*entity.Class, *app_error.AppError)
	ListClassesForUser(ctx context.Context, userID string) ([]*entity.Class, *app_error.AppError)
	// FindMembership returns (nil, nil) when the user has no membership
	// in the class. Duplicate memberships resolve to the first row.
	FindMembership(ctx context.Context, classID uuid.UUID, userID string) (*entity.ClassMembership, *app_error.AppError)
	ListClassMembers(ctx context.Context, classID uuid.UUID) ([]*entity.ClassMembership, *app_error.AppError)
	ListClassMemberIDs(ctx context.Context, classID uuid.UUID) ([]string, *app_error.AppError)
	HasClassPermission(ctx context.Context, classID uuid.UUID, userID, permission string) (bool, *app_error.AppError)

	FindGroupByID(ctx context.Context, groupID uuid.UUID) (*entity.Group, *app_error.AppError)
	ListGroups(ctx context.Context, classID uuid.UUID) ([]*entity.Group, *app_error.AppError)
	CreateGroup(ctx context.Context, group *entity.Group) *app_error.AppError
	IsGroupMember(ctx context.Context, groupID uuid.UUID, userID string) (bool, *app_error.AppError)
	AddGroupMember(ctx context.Context, groupID uuid.UUID, userID string) *app_error.AppError
	ListGroupMembers(ctx context.Context, groupID uuid.UUID) ([]*entity.GroupMembership, *app_error.AppError)
	ListGroupMemberIDs(ctx context.Context, groupID uuid.UUID) ([]string, *app_error.AppError)
}
