package school_service

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/school_dto"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
)

type SchoolServiceContract interface {
	ListSchools(ctx context.Context, userID string) ([]school_dto.SchoolResponse, *app_error.AppError)
	ListSchoolUsers(ctx context.Context, userID, schoolID string) ([]school_dto.UserResponse, *app_error.AppError)
}
