package news_repo

import (
	"context"
	"errors"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsRepo struct {
	AppState *state.AppState
}

func NewNewsRepo(appState *state.AppState) NewsRepoContract {
	return &NewsRepo{
		AppState: appState,
	}
}

// CreatePost persists the post with its attachments and poll options in
// one transaction via GORM's association handling.
func (r *NewsRepo) CreatePost(ctx context.Context, post *entity.NewsPost) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(post).Error; err != nil {
		return app_error.Internal("failed to create news post", "db-create")
	}
	return nil
}

func (r *NewsRepo) FindPostByID(ctx context.Context, newsID uuid.UUID) (*entity.NewsPost, *app_error.AppError) {
	var post entity.NewsPost
	err := r.AppState.DB.WithContext(ctx).
		Preload("Attachments").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", newsID).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("news post not found")
		}
		return nil, app_error.Internal("failed to fetch news post", "db-error")
	}
	return &post, nil
}

func (r *NewsRepo) ListSchoolPosts(ctx context.Context, schoolID uuid.UUID) ([]*entity.NewsPost, *app_error.AppError) {
	return r.listPosts(ctx, "school_id = ?", schoolID)
}

func (r *NewsRepo) ListClassPosts(ctx context.Context, classID uuid.UUID) ([]*entity.NewsPost, *app_error.AppError) {
	return r.listPosts(ctx, "class_id = ?", classID)
}

func (r *NewsRepo) listPosts(ctx context.Context, cond string, arg any) ([]*entity.NewsPost, *app_error.AppError) {
	var posts []*entity.NewsPost
	err := r.AppState.DB.WithContext(ctx).
		Preload("Attachments").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where(cond, arg).
		Order("published_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch news posts", "db-error")
	}
	return posts, nil
}

// DeletePost removes the post and its dependent rows in one transaction.
func (r *NewsRepo) DeletePost(ctx context.Context, newsID uuid.UUID) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	for _, del := range []error{
		tx.Where("news_post_id = ?", newsID).Delete(&entity.NewsLike{}).Error,
		tx.Where("news_post_id = ?", newsID).Delete(&entity.PollVote{}).Error,
		tx.Where("news_post_id = ?", newsID).Delete(&entity.PollOption{}).Error,
		tx.Where("news_post_id = ?", newsID).Delete(&entity.NewsAttachment{}).Error,
		tx.Where("id = ?", newsID).Delete(&entity.NewsPost{}).Error,
	} {
		if del != nil {
			tx.Rollback()
			return app_error.Internal("failed to delete news post", "db-delete")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.Internal("failed to commit news deletion", "db-commit")
	}
	return nil
}

func (r *NewsRepo) HasLike(ctx context.Context, newsID uuid.UUID, userID string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.NewsLike{}).
		Where("news_post_id = ? AND user_id = ?", newsID, userID).
		Count(&count).Error
	if err != nil {
		return false, app_error.Internal("failed to check like", "db-count")
	}
	return count > 0, nil
}

func (r *NewsRepo) CreateLike(ctx context.Context, newsID uuid.UUID, userID string) *app_error.AppError {
	like := entity.NewsLike{
		NewsPostID: newsID,
		UserID:     userID,
	}
	if err := r.AppState.DB.WithContext(ctx).Create(&like).Error; err != nil {
		return app_error.Internal("failed to create like", "db-create")
	}
	return nil
}

func (r *NewsRepo) DeleteLike(ctx context.Context, newsID uuid.UUID, userID string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).
		Where("news_post_id = ? AND user_id = ?", newsID, userID).
		Delete(&entity.NewsLike{}).Error
	if err != nil {
		return app_error.Internal("failed to delete like", "db-delete")
	}
	return nil
}

func (r *NewsRepo) CountLikes(ctx context.Context, newsIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError) {
	counts := make(map[uuid.UUID]int64, len(newsIDs))
	if len(newsIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		NewsPostID uuid.UUID
		Total      int64
	}
	err := r.AppState.DB.WithContext(ctx).Model(&entity.NewsLike{}).
		Select("news_post_id, COUNT(*) AS total").
		Where("news_post_id IN ?", newsIDs).
		Group("news_post_id").
		Find(&rows).Error
	if err != nil {
		return nil, app_error.Internal("failed to count likes", "db-count")
	}

	for _, row := range rows {
		counts[row.NewsPostID] = row.Total
	}
	return counts, nil
}

func (r *NewsRepo) ListLikedPostIDs(ctx context.Context, newsIDs []uuid.UUID, userID string) (map[uuid.UUID]bool, *app_error.AppError) {
	liked := make(map[uuid.UUID]bool, len(newsIDs))
	if len(newsIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	err := r.AppState.DB.WithContext(ctx).Model(&entity.NewsLike{}).
		Where("news_post_id IN ? AND user_id = ?", newsIDs, userID).
		Pluck("news_post_id", &ids).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch liked posts", "db-error")
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *NewsRepo) FindPollOption(ctx context.Context, optionID uuid.UUID) (*entity.PollOption, *app_error.AppError) {
	var option entity.PollOption
	err := r.AppState.DB.WithContext(ctx).Where("id = ?", optionID).First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("poll option not found")
		}
		return nil, app_error.Internal("failed to fetch poll option", "db-error")
	}
	return &option, nil
}

func (r *NewsRepo) FindVote(ctx context.Context, newsID uuid.UUID, userID string) (*entity.PollVote, *app_error.AppError) {
	var vote entity.PollVote
	err := r.AppState.DB.WithContext(ctx).
		Where("news_post_id = ? AND user_id = ?", newsID, userID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, app_error.Internal("failed to fetch poll vote", "db-error")
	}
	return &vote, nil
}

func (r *NewsRepo) CreateVote(ctx context.Context, vote *entity.PollVote) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(vote).Error; err != nil {
		return app_error.Internal("failed to create poll vote", "db-create")
	}
	return nil
}

func (r *NewsRepo) MoveVote(ctx context.Context, voteID int64, optionID uuid.UUID) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.PollVote{}).
		Where("id = ?", voteID).
		Update("poll_option_id", optionID).Error
	if err != nil {
		return app_error.Internal("failed to move poll vote", "db-update")
	}
	return nil
}

func (r *NewsRepo) DeleteVote(ctx context.Context, voteID int64) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).
		Where("id = ?", voteID).
		Delete(&entity.PollVote{}).Error
	if err != nil {
		return app_error.Internal("failed to delete poll vote", "db-delete")
	}
	return nil
}

func (r *NewsRepo) CountVotesByOption(ctx context.Context, newsIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError) {
	counts := make(map[uuid.UUID]int64)
	if len(newsIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PollOptionID uuid.UUID
		Total        int64
	}
	err := r.AppState.DB.WithContext(ctx).Model(&entity.PollVote{}).
		Select("poll_option_id, COUNT(*) AS total").
		Where("news_post_id IN ?", newsIDs).
		Group("poll_option_id").
		Find(&rows).Error
	if err != nil {
		return nil, app_error.Internal("failed to count poll votes", "db-count")
	}

	for _, row := range rows {
		counts[row.PollOptionID] = row.Total
	}
	return counts, nil
}

func (r *NewsRepo) VotedOptions(ctx context.Context, newsIDs []uuid.UUID, userID string) (map[uuid.UUID]uuid.UUID, *app_error.AppError) {
	voted := make(map[uuid.UUID]uuid.UUID)
	if len(newsIDs) == 0 {
		return voted, nil
	}

	var rows []entity.PollVote
	err := r.AppState.DB.WithContext(ctx).
		Where("news_post_id IN ? AND user_id = ?", newsIDs, userID).
		Find(&rows).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch poll votes", "db-error")
	}

	for _, row := range rows {
		voted[row.NewsPostID] = row.PollOptionID
	}
	return voted, nil
}
