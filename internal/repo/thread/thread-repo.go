package thread_repo

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThreadRepo struct {
	AppState *state.AppState
}

func NewThreadRepo(appState *state.AppState) ThreadRepoContract {
	return &ThreadRepo{
		AppState: appState,
	}
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// GetOrCreateDirectThread deduplicates by the canonicalized pair key.
// Concurrent creators collide on the unique index; the loser re-finds
// the winner's thread.
func (r *ThreadRepo) GetOrCreateDirectThread(ctx context.Context, userA, userB string) (*entity.Thread, *app_error.AppError) {
	key := entity.DirectThreadKey(userA, userB)

	thread, err := r.findDirectThread(ctx, key)
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.Internal("failed to query direct thread", "db-error")
	}

	newThread, appErr := r.createThread(ctx, &entity.Thread{
		ID:        uuid.New(),
		Kind:      entity.ThreadKindDirect,
		DirectKey: &key,
	}, []string{userA, userB})
	if appErr != nil {
		if appErr.Field == "db-duplicate" {
			thread, err := r.findDirectThread(ctx, key)
			if err == nil {
				return thread, nil
			}
		}
		return nil, appErr
	}

	return newThread, nil
}

func (r *ThreadRepo) findDirectThread(ctx context.Context, directKey string) (*entity.Thread, error) {
	var thread entity.Thread
	err := r.AppState.DB.WithContext(ctx).
		Preload("Participants").
		Where("direct_key = ?", directKey).
		First(&thread).Error
	return &thread, err
}

func (r *ThreadRepo) GetOrCreateGroupThread(ctx context.Context, groupID uuid.UUID, memberIDs []string) (*entity.Thread, *app_error.AppError) {
	return r.getOrCreateSnapshotThread(ctx, "group_id", groupID, &entity.Thread{
		ID:      uuid.New(),
		Kind:    entity.ThreadKindGroup,
		GroupID: &groupID,
	}, memberIDs)
}

func (r *ThreadRepo) GetOrCreateClassThread(ctx context.Context, classID uuid.UUID, memberIDs []string) (*entity.Thread, *app_error.AppError) {
	return r.getOrCreateSnapshotThread(ctx, "class_id", classID, &entity.Thread{
		ID:      uuid.New(),
		Kind:    entity.ThreadKindClassChannel,
		ClassID: &classID,
	}, memberIDs)
}

// getOrCreateSnapshotThread materializes a thread unique per its FK and
// snapshots the current membership into participant rows. The snapshot
// is not maintained afterward.
func (r *ThreadRepo) getOrCreateSnapshotThread(ctx context.Context, fkColumn string, fk uuid.UUID, template *entity.Thread, memberIDs []string) (*entity.Thread, *app_error.AppError) {
	find := func() (*entity.Thread, error) {
		var thread entity.Thread
		err := r.AppState.DB.WithContext(ctx).
			Preload("Participants").
			Where(fkColumn+" = ?", fk).
			First(&thread).Error
		return &thread, err
	}

	thread, err := find()
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.Internal("failed to query thread", "db-error")
	}

	newThread, appErr := r.createThread(ctx, template, memberIDs)
	if appErr != nil {
		if appErr.Field == "db-duplicate" {
			thread, err := find()
			if err == nil {
				return thread, nil
			}
		}
		return nil, appErr
	}

	return newThread, nil
}

func (r *ThreadRepo) createThread(ctx context.Context, thread *entity.Thread, memberIDs []string) (*entity.Thread, *app_error.AppError) {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(thread).Error; err != nil {
		tx.Rollback()
		if isDuplicateErr(err) {
			return nil, app_error.NewAppError(http.StatusConflict, "thread already exists", "db-duplicate")
		}
		return nil, app_error.Internal("failed to create thread", "db-create")
	}

	participants := make([]entity.ThreadParticipant, 0, len(memberIDs))
	seen := make(map[string]bool, len(memberIDs))
	for _, userID := range memberIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		participants = append(participants, entity.ThreadParticipant{
			ThreadID: thread.ID,
			UserID:   userID,
		})
	}

	if len(participants) > 0 {
		if err := tx.Create(&participants).Error; err != nil {
			tx.Rollback()
			return nil, app_error.Internal("failed to add thread participants", "db-create")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, app_error.Internal("failed to commit thread creation", "db-commit")
	}

	thread.Participants = participants
	return thread, nil
}

func (r *ThreadRepo) FindThreadByID(ctx context.Context, threadID uuid.UUID) (*entity.Thread, *app_error.AppError) {
	var thread entity.Thread
	err := r.AppState.DB.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", threadID).
		First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("thread is not found")
			return nil, app_error.NotFound("thread not found")
		}
		return nil, app_error.Internal("failed to fetch thread", "db-error")
	}
	return &thread, nil
}

func (r *ThreadRepo) ListThreadsForUser(ctx context.Context, userID string) ([]*entity.Thread, *app_error.AppError) {
	var threads []*entity.Thread
	err := r.AppState.DB.WithContext(ctx).
		Preload("Participants").
		Joins("JOIN thread_participants tp ON tp.thread_id = threads.id").
		Where("tp.user_id = ?", userID).
		Order("threads.updated_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch threads", "db-error")
	}
	return threads, nil
}

func (r *ThreadRepo) IsParticipant(ctx context.Context, threadID uuid.UUID, userID string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.ThreadParticipant{}).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Count(&count).Error
	if err != nil {
		return false, app_error.Internal("failed to check thread participation", "db-count")
	}
	return count > 0, nil
}

func (r *ThreadRepo) CountParticipants(ctx context.Context, threadID uuid.UUID) (int64, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.ThreadParticipant{}).
		Where("thread_id = ?", threadID).
		Count(&count).Error
	if err != nil {
		return 0, app_error.Internal("failed to count thread participants", "db-count")
	}
	return count, nil
}

func (r *ThreadRepo) InsertMessage(ctx context.Context, msg *entity.Message) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(msg).Error; err != nil {
		tx.Rollback()
		return app_error.Internal("failed to create message", "db-create")
	}

	if err := tx.Model(&entity.Thread{}).
		Where("id = ?", msg.ThreadID).
		Update("updated_at", time.Now()).Error; err != nil {
		tx.Rollback()
		return app_error.Internal("failed to touch thread recency", "db-update")
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.Internal("failed to commit message", "db-commit")
	}
	return nil
}

func (r *ThreadRepo) FindMessageByID(ctx context.Context, messageID uuid.UUID) (*entity.Message, *app_error.AppError) {
	var msg entity.Message
	err := r.AppState.DB.WithContext(ctx).
		Where("id = ?", messageID).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("message not found or has been deleted")
		}
		return nil, app_error.Internal("failed to fetch message", "db-error")
	}
	return &msg, nil
}

func (r *ThreadRepo) ListTopLevelMessages(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*entity.Message, *app_error.AppError) {
	var messages []*entity.Message
	err := r.AppState.DB.WithContext(ctx).
		Where("thread_id = ? AND parent_message_id IS NULL", threadID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch messages", "db-error")
	}

	// reverse messages to be in ascending order (oldest to newest)
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *ThreadRepo) ListMessagesSince(ctx context.Context, threadID uuid.UUID, since time.Time) ([]*entity.Message, *app_error.AppError) {
	var messages []*entity.Message
	err := r.AppState.DB.WithContext(ctx).
		Where("thread_id = ? AND parent_message_id IS NULL AND created_at > ?", threadID, since).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch new messages", "db-error")
	}
	return messages, nil
}

func (r *ThreadRepo) ListReplies(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID][]*entity.Message, *app_error.AppError) {
	replies := make(map[uuid.UUID][]*entity.Message, len(parentIDs))
	if len(parentIDs) == 0 {
		return replies, nil
	}

	var rows []*entity.Message
	err := r.AppState.DB.WithContext(ctx).
		Where("parent_message_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch replies", "db-error")
	}

	for _, row := range rows {
		replies[*row.ParentMessageID] = append(replies[*row.ParentMessageID], row)
	}
	return replies, nil
}

func (r *ThreadRepo) UpsertReadStatus(ctx context.Context, messageID uuid.UUID, userID string) *app_error.AppError {
	receipt := entity.MessageReadStatus{
		MessageID: messageID,
		UserID:    userID,
	}
	err := r.AppState.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&receipt).Error
	if err != nil {
		return app_error.Internal("failed to upsert read status", "db-create")
	}
	return nil
}

func (r *ThreadRepo) CountReadStatuses(ctx context.Context, messageID uuid.UUID) (int64, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.MessageReadStatus{}).
		Where("message_id = ?", messageID).
		Count(&count).Error
	if err != nil {
		return 0, app_error.Internal("failed to count read statuses", "db-count")
	}
	return count, nil
}

func (r *ThreadRepo) CountReadStatusesForMessages(ctx context.Context, messageIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError) {
	counts := make(map[uuid.UUID]int64, len(messageIDs))
	if len(messageIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		MessageID uuid.UUID
		Total     int64
	}
	err := r.AppState.DB.WithContext(ctx).Model(&entity.MessageReadStatus{}).
		Select("message_id, COUNT(*) AS total").
		Where("message_id IN ?", messageIDs).
		Group("message_id").
		Find(&rows).Error
	if err != nil {
		return nil, app_error.Internal("failed to count read statuses", "db-count")
	}

	for _, row := range rows {
		counts[row.MessageID] = row.Total
	}
	return counts, nil
}

func (r *ThreadRepo) ListSnapshotThreads(ctx context.Context) ([]*entity.Thread, *app_error.AppError) {
	var threads []*entity.Thread
	err := r.AppState.DB.WithContext(ctx).
		Where("kind IN ?", []string{entity.ThreadKindGroup, entity.ThreadKindClassChannel}).
		Find(&threads).Error
	if err != nil {
		return nil, app_error.Internal("failed to fetch snapshot threads", "db-error")
	}
	return threads, nil
}

func (r *ThreadRepo) InsertMissingParticipants(ctx context.Context, threadID uuid.UUID, userIDs []string) (int64, *app_error.AppError) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	participants := make([]entity.ThreadParticipant, 0, len(userIDs))
	for _, userID := range userIDs {
		participants = append(participants, entity.ThreadParticipant{
			ThreadID: threadID,
			UserID:   userID,
		})
	}

	result := r.AppState.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&participants)
	if result.Error != nil {
		return 0, app_error.Internal("failed to insert thread participants", "db-create")
	}
	return result.RowsAffected, nil
}
