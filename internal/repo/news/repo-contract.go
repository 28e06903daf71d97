package news_repo

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/google/uuid"
)

type NewsRepoContract interface {
	CreatePost(ctx context.Context, post *entity.NewsPost) *app_error.AppError
	FindPostByID(ctx context.Context, newsID uuid.UUID) (*entity.NewsPost, *app_error.AppError)
	ListSchoolPosts(ctx context.Context, schoolID uuid.UUID) ([]*entity.NewsPost, *app_error.AppError)
	ListClassPosts(ctx context.Context, classID uuid.UUID) ([]*entity.NewsPost, *app_error.AppError)
	DeletePost(ctx context.Context, newsID uuid.UUID) *app_error.AppError

	HasLike(ctx context.Context, newsID uuid.UUID, userID string) (bool, *app_error.AppError)
	CreateLike(ctx context.Context, newsID uuid.UUID, userID string) *app_error.AppError
	DeleteLike(ctx context.Context, newsID uuid.UUID, userID string) *app_error.AppError
	CountLikes(ctx context.Context, newsIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError)
	ListLikedPostIDs(ctx context.Context, newsIDs []uuid.UUID, userID string) (map[uuid.UUID]bool, *app_error.AppError)

	FindPollOption(ctx context.Context, optionID uuid.UUID) (*entity.PollOption, *app_error.AppError)
	// FindVote returns (nil, nil) when the user has not voted in the poll.
	FindVote(ctx context.Context, newsID uuid.UUID, userID string) (*entity.PollVote, *app_error.AppError)
	CreateVote(ctx context.Context, vote *entity.PollVote) *app_error.AppError
	MoveVote(ctx context.Context, voteID int64, optionID uuid.UUID) *app_error.AppError
	DeleteVote(ctx context.Context, voteID int64) *app_error.AppError
	// CountVotesByOption keys the result by poll option id.
	CountVotesByOption(ctx context.Context, newsIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError)
	// VotedOptions maps poll post id to the option the user voted for.
	VotedOptions(ctx context.Context, newsIDs []uuid.UUID, userID string) (map[uuid.UUID]uuid.UUID, *app_error.AppError)
}
