package school_repo

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/google/uuid"
)

type SchoolRepoContract interface {
	FindSchoolByID(ctx context.Context, schoolID uuid.UUID) (*entity.School, *app_error.AppError)
	ListSchoolsForUser(ctx context.Context, userID string) ([]*entity.School, *app_error.AppError)
	ListSchoolUsers(ctx context.Context, schoolID uuid.UUID) ([]*entity.User, *app_error.AppError)
	IsSchoolMember(ctx context.Context, schoolID uuid.UUID, userID string) (bool, *app_error.AppError)
	IsSchoolAdmin(ctx context.Context, schoolID uuid.UUID, userID string) (bool, *app_error.AppError)
	HasSchoolPermission(ctx context.Context, schoolID uuid.UUID, userID, permission string) (bool, *app_error.AppError)
}
