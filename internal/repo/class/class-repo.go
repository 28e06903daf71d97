package class_repo

import (
	"context"
	"errors"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassRepo struct {
	AppState *state.AppState
}

func NewClassRepo(appState *state.AppState) ClassRepoContract {
	return &ClassRepo{
		AppState: appState,
	}
}

func (r *ClassRepo) FindClassByID(ctx context.Context, classID uuid.UUID) (*entity.Class, *app_error.AppError) {
	var class entity.Class
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", classID).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("class not found")
		}
		return nil, app_error.Internal("failed to fetch class", "db-error")
	}
	return &class, nil
}

func (r *ClassRepo) ListClassesForUser(ctx context.Context, userID string) ([]*entity.Class, *app_error.AppError) {
	var classes []*entity.Class
	err := r.AppState.DB.WithContext(ctx).
		Joins("JOIN class_memberships cm ON cm.class_id = classes.id").
		Where("cm.user_id = ?", userID).
		Distinct().
		Order("classes.name ASC").
		Find(&classes).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch classes", "db-error")
	}
	return classes, nil
}

func (r *ClassRepo) FindMembership(ctx context.Context, classID uuid.UUID, userID string) (*entity.ClassMembership, *app_error.AppError) {
	var membership entity.ClassMembership
	err := r.AppState.DB.WithContext(ctx).
		Where("class_id = ? AND user_id = ?", classID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, app_error.Internal("failed to fetch class membership", "db-error")
	}
	return &membership, nil
}

func (r *ClassRepo) ListClassMembers(ctx context.Context, classID uuid.UUID) ([]*entity.ClassMembership, *app_error.AppError) {
	var members []*entity.ClassMembership
	err := r.AppState.DB.WithContext(ctx).
		Preload("User").
		Where("class_id = ?", classID).
		Find(&members).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch class members", "db-error")
	}
	return members, nil
}

func (r *ClassRepo) ListClassMemberIDs(ctx context.Context, classID uuid.UUID) ([]string, *app_error.AppError) {
	var ids []string
	err := r.AppState.DB.WithContext(ctx).Model(&entity.ClassMembership{}).
		Where("class_id = ?", classID).
		Distinct().
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch class member ids", "db-error")
	}
	return ids, nil
}

func (r *ClassRepo) HasClassPermission(ctx context.Context, classID uuid.UUID, userID, permission string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.ClassPermission{}).
		Where("class_id = ? AND user_id = ? AND permission = ?", classID, userID, permission).
		Count(&count).Error
	if err != nil {
		return false, app_error.Internal("failed to check class permission", "db-count")
	}
	return count > 0, nil
}

func (r *ClassRepo) FindGroupByID(ctx context.Context, groupID uuid.UUID) (*entity.Group, *app_error.AppError) {
	var group entity.Group
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("group not found")
		}
		return nil, app_error.Internal("failed to fetch group", "db-error")
	}
	return &group, nil
}

func (r *ClassRepo) ListGroups(ctx context.Context, classID uuid.UUID) ([]*entity.Group, *app_error.AppError) {
	var groups []*entity.Group
	err := r.AppState.DB.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch groups", "db-error")
	}
	return groups, nil
}

// CreateGroup inserts the group and auto-adds the owner as its first
// member in one transaction.
func (r *ClassRepo) CreateGroup(ctx context.Context, group *entity.Group) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(group).Error; err != nil {
		tx.Rollback()
		return app_error.Internal("failed to create group", "db-create")
	}

	owner := entity.GroupMembership{
		GroupID: group.ID,
		UserID:  group.OwnerID,
	}
	if err := tx.Create(&owner).Error; err != nil {
		tx.Rollback()
		return app_error.Internal("failed to add group owner membership", "db-create")
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.Internal("failed to commit group creation", "db-commit")
	}
	return nil
}

func (r *ClassRepo) IsGroupMember(ctx context.Context, groupID uuid.UUID, userID string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, app_error.Internal("failed to check group membership", "db-count")
	}
	return count > 0, nil
}

func (r *ClassRepo) AddGroupMember(ctx context.Context, groupID uuid.UUID, userID string) *app_error.AppError {
	membership := entity.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
	}
	err := r.AppState.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&membership).Error
	if err != nil {
		return app_error.Internal("failed to add group member", "db-create")
	}
	return nil
}

func (r *ClassRepo) ListGroupMembers(ctx context.Context, groupID uuid.UUID) ([]*entity.GroupMembership, *app_error.AppError) {
	var members []*entity.GroupMembership
	err := r.AppState.DB.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Find(&members).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch group members", "db-error")
	}
	return members, nil
}

func (r *ClassRepo) ListGroupMemberIDs(ctx context.Context, groupID uuid.UUID) ([]string, *app_error.AppError) {
	var ids []string
	err := r.AppState.DB.WithContext(ctx).Model(&entity.GroupMembership{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch group member ids", "db-error")
	}
	return ids, nil
}
