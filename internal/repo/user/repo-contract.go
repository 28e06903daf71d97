package user_repo

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
)

type UserRepoContract interface {
	UpsertUser(ctx context.Context, model entity.User) *app_error.AppError
	FindUserByID(ctx context.Context, userId string) (*entity.User, *app_error.AppError)
}
