package news_service

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/news_dto"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
)

type NewsServiceContract interface {
	CreatePost(ctx context.Context, req news_dto.CreateNewsRequest, userID string) (*news_dto.NewsResponse, *app_error.AppError)
	ListSchoolPosts(ctx context.Context, userID, schoolID string) ([]news_dto.NewsResponse, *app_error.AppError)
	ListClassPosts(ctx context.Context, userID, classID string) ([]news_dto.NewsResponse, *app_error.AppError)
	DeletePost(ctx context.Context, userID, newsID string) *app_error.AppError
	ToggleLike(ctx context.Context, userID, newsID string) (*news_dto.LikeResponse, *app_error.AppError)
	// ToggleVote re-votes the same option off, moves a vote to a new
	// option, or records a first vote.
	ToggleVote(ctx context.Context, userID, pollOptionID string) (*news_dto.VoteResponse, *app_error.AppError)
	SchoolNewsPermissions(ctx context.Context, userID, schoolID string) (*news_dto.NewsPermissionsResponse, *app_error.AppError)
	ClassNewsPermissions(ctx context.Context, userID, classID string) (*news_dto.NewsPermissionsResponse, *app_error.AppError)
}
