package thread_service

import (
	"context"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/thread_dto"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
)

type ThreadServiceContract interface {
	ListThreads(ctx context.Context, userID string) ([]thread_dto.ThreadResponse, *app_error.AppError)
	CreateDirectThread(ctx context.Context, userID, otherUserID string) (*thread_dto.ThreadResponse, *app_error.AppError)
	CreateGroupThread(ctx context.Context, userID, groupID string) (*thread_dto.ThreadResponse, *app_error.AppError)
	CreateClassThread(ctx context.Context, userID, classID string) (*thread_dto.ThreadResponse, *app_error.AppError)
	SendMessage(ctx context.Context, req thread_dto.SendMessageRequest, threadID, senderID string) (*thread_dto.MessageResponse, *app_error.AppError)
	GetThreadMessages(ctx context.Context, threadID, userID string, limit, offset int) (*thread_dto.GetMessagesResponse, *app_error.AppError)
	MarkMessageAsRead(ctx context.Context, messageID, userID string) (*thread_dto.MarkReadResponse, *app_error.AppError)
	// PollNewMessages holds the request open, retrying the since-query
	// at a fixed interval, until a message appears or timeout elapses.
	PollNewMessages(ctx context.Context, threadID, userID string, since time.Time, timeout time.Duration) (*thread_dto.PollResponse, *app_error.AppError)
}
