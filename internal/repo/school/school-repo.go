package school_repo

import (
	"context"
	"errors"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolRepo struct {
	AppState *state.AppState
}

func NewSchoolRepo(appState *state.AppState) SchoolRepoContract {
	return &SchoolRepo{
		AppState: appState,
	}
}

func (r *SchoolRepo) FindSchoolByID(ctx context.Context, schoolID uuid.UUID) (*entity.School, *app_error.AppError) {
	var school entity.School
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", schoolID).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("school not found")
		}
		return nil, app_error.Internal("failed to fetch school", "db-error")
	}
	return &school, nil
}

func (r *SchoolRepo) ListSchoolsForUser(ctx context.Context, userID string) ([]*entity.School, *app_error.AppError) {
	var schools []*entity.School
	err := r.AppState.DB.WithContext(ctx).
		Joins("JOIN school_members sm ON sm.school_id = schools.id").
		Where("sm.user_id = ?", userID).
		Order("schools.name ASC").
		Find(&schools).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch schools", "db-error")
	}
	return schools, nil
}

func (r *SchoolRepo) ListSchoolUsers(ctx context.Context, schoolID uuid.UUID) ([]*entity.User, *app_error.AppError) {
	var users []*entity.User
	err := r.AppState.DB.WithContext(ctx).
		Joins("JOIN school_members sm ON sm.user_id = users.id").
		Where("sm.school_id = ?", schoolID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch school users", "db-error")
	}
	return users, nil
}

func (r *SchoolRepo) IsSchoolMember(ctx context.Context, schoolID uuid.UUID, userID string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.SchoolMember{}).
		Where("school_id = ? AND user_id = ?", schoolID, userID).
		Count(&count).Error
	if err != nil {
		return false, app_error.Internal("failed to check school membership", "db-count")
	}
	return count > 0, nil
}

func (r *SchoolRepo) IsSchoolAdmin(ctx context.Context, schoolID uuid.UUID, userID string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.SchoolMember{}).
		Where("school_id = ? AND user_id = ? AND role = ?", schoolID, userID, entity.SchoolRoleAdmin).
		Count(&count).Error
	if err != nil {
		return false, app_error.Internal("failed to check school admin role", "db-count")
	}
	return count > 0, nil
}

func (r *SchoolRepo) HasSchoolPermission(ctx context.Context, schoolID uuid.UUID, userID, permission string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.SchoolPermission{}).
		Where("school_id = ? AND user_id = ? AND permission = ?", schoolID, userID, permission).
		Count(&count).Error
	if err != nil {
		return false, app_error.Internal("failed to check school permission", "db-count")
	}
	return count > 0, nil
}
