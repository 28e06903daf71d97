package thread_repo

import (
	"context"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/google/uuid"
)

type ThreadRepoContract interface {
	GetOrCreateDirectThread(ctx context.Context, userA, userB string) (*entity.Thread, *app_error.AppError)
	GetOrCreateGroupThread(ctx context.Context, groupID uuid.UUID, memberIDs []string) (*entity.Thread, *app_error.AppError)
	GetOrCreateClassThread(ctx context.Context, classID uuid.UUID, memberIDs []string) (*entity.Thread, *app_error.AppError)
	FindThreadByID(ctx context.Context, threadID uuid.UUID) (*entity.Thread, *app_error.AppError)
	ListThreadsForUser(ctx context.Context, userID string) ([]*entity.Thread, *app_error.AppError)
	IsParticipant(ctx context.Context, threadID uuid.UUID, userID string) (bool, *app_error.AppError)
	CountParticipants(ctx context.Context, threadID uuid.UUID) (int64, *app_error.AppError)

	// InsertMessage appends the message and touches the thread's
	// updated_at in the same transaction so thread listings order by
	// recency.
	InsertMessage(ctx context.Context, msg *entity.Message) *app_error.AppError
	FindMessageByID(ctx context.Context, messageID uuid.UUID) (*entity.Message, *app_error.AppError)
	// ListTopLevelMessages pages newest-first at the storage layer and
	// returns the page reversed to oldest-first.
	ListTopLevelMessages(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*entity.Message, *app_error.AppError)
	// ListMessagesSince returns undeleted top-level messages with
	// created_at strictly after since, ascending.
	ListMessagesSince(ctx context.Context, threadID uuid.UUID, since time.Time) ([]*entity.Message, *app_error.AppError)
	ListReplies(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID][]*entity.Message, *app_error.AppError)

	UpsertReadStatus(ctx context.Context, messageID uuid.UUID, userID string) *app_error.AppError
	CountReadStatuses(ctx context.Context, messageID uuid.UUID) (int64, *app_error.AppError)
	CountReadStatusesForMessages(ctx context.Context, messageIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError)

	// ListSnapshotThreads returns group and class_channel threads for
	// the participant repair pass.
	ListSnapshotThreads(ctx context.Context) ([]*entity.Thread, *app_error.AppError)
	InsertMissingParticipants(ctx context.Context, threadID uuid.UUID, userIDs []string) (int64, *app_error.AppError)
}
