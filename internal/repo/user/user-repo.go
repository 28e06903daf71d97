package user_repo

import (
	"context"
	"errors"
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	AppState *state.AppState
}

func NewUserRepo(appState *state.AppState) UserRepoContract {
	return &UserRepo{
		AppState: appState,
	}
}

// UpsertUser synchronizes the identity row from token claims. Called on
// every authenticated request; rows are never deleted.
func (r *UserRepo) UpsertUser(ctx context.Context, model entity.User) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "email", "phone", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when trying to upsert user", "db-upsert")
	}

	return nil
}

func (r *UserRepo) FindUserByID(ctx context.Context, userId string) (*entity.User, *app_error.AppError) {
	var user entity.User

	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "cannot find user", "user-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when fetch user", "db-error")
	}

	return &user, nil
}
