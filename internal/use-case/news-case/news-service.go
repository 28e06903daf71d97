package news_service

import (
	"context"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/news_dto"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	class_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/class"
	news_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/news"
	school_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/school"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
)

type NewsService struct {
	AppState   *state.AppState
	NewsRepo   news_repo.NewsRepoContract
	SchoolRepo school_repo.SchoolRepoContract
	ClassRepo  class_repo.ClassRepoContract
}

func NewNewsService(appState *state.AppState) NewsServiceContract {
	return &NewsService{
		AppState:   appState,
		NewsRepo:   news_repo.NewNewsRepo(appState),
		SchoolRepo: school_repo.NewSchoolRepo(appState),
		ClassRepo:  class_repo.NewClassRepo(appState),
	}
}

func (s *NewsService) CreatePost(ctx context.Context, req news_dto.CreateNewsRequest, userID string) (*news_dto.NewsResponse, *app_error.AppError) {
	if (req.SchoolID == nil) == (req.ClassID == nil) {
		return nil, app_error.BadRequest("exactly one of schoolId and classId is required", "scope")
	}
	if req.Type == entity.NewsTypePoll && len(req.PollOptions) < 2 {
		return nil, app_error.BadRequest("a poll needs at least two options", "pollOptions")
	}

	post := &entity.NewsPost{
		ID:          uuid.New(),
		AuthorID:    userID,
		Type:        req.Type,
		Title:       req.Title,
		Content:     req.Content,
		PublishedAt: time.Now(),
	}

	if req.SchoolID != nil {
		sid, parseErr := uuid.Parse(*req.SchoolID)
		if parseErr != nil {
			return nil, app_error.BadRequest("invalid school id", "schoolId")
		}
		canPost, err := s.canPostSchoolNews(ctx, sid, userID)
		if err != nil {
			return nil, err
		}
		if !canPost {
			return nil, app_error.Forbidden("You don't have permission to post news in this school")
		}
		post.SchoolID = &sid
	} else {
		cid, parseErr := uuid.Parse(*req.ClassID)
		if parseErr != nil {
			return nil, app_error.BadRequest("invalid class id", "classId")
		}
		canPost, err := s.canPostClassNews(ctx, cid, userID)
		if err != nil {
			return nil, err
		}
		if !canPost {
			return nil, app_error.Forbidden("You don't have permission to post news in this class")
		}
		post.ClassID = &cid
	}

	for _, url := range req.Attachments {
		post.Attachments = append(post.Attachments, entity.NewsAttachment{URL: url})
	}
	if req.Type == entity.NewsTypePoll {
		for i, text := range req.PollOptions {
			post.Options = append(post.Options, entity.PollOption{
				ID:       uuid.New(),
				Text:     text,
				Position: i,
			})
		}
	}

	if err := s.NewsRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	resp := s.toNewsResponse(post, 0, false, nil, uuid.Nil)
	return &resp, nil
}

func (s *NewsService) ListSchoolPosts(ctx context.Context, userID, schoolID string) ([]news_dto.NewsResponse, *app_error.AppError) {
	sid, parseErr := uuid.Parse(schoolID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid school id", "schoolId")
	}

	isMember, err := s.SchoolRepo.IsSchoolMember(ctx, sid, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, app_error.Forbidden("You don't have access to this school")
	}

	posts, err := s.NewsRepo.ListSchoolPosts(ctx, sid)
	if err != nil {
		return nil, err
	}
	return s.decoratePosts(ctx, posts, userID)
}

func (s *NewsService) ListClassPosts(ctx context.Context, userID, classID string) ([]news_dto.NewsResponse, *app_error.AppError) {
	cid, parseErr := uuid.Parse(classID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid class id", "classId")
	}

	membership, err := s.ClassRepo.FindMembership(ctx, cid, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, app_error.Forbidden("You don't have access to this class")
	}

	posts, err := s.NewsRepo.ListClassPosts(ctx, cid)
	if err != nil {
		return nil, err
	}
	return s.decoratePosts(ctx, posts, userID)
}

// DeletePost is author-only.
func (s *NewsService) DeletePost(ctx context.Context, userID, newsID string) *app_error.AppError {
	nid, parseErr := uuid.Parse(newsID)
	if parseErr != nil {
		return app_error.BadRequest("invalid news id", "newsId")
	}

	post, err := s.NewsRepo.FindPostByID(ctx, nid)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return app_error.Forbidden("Only the author can delete this post")
	}

	return s.NewsRepo.DeletePost(ctx, nid)
}

func (s *NewsService) ToggleLike(ctx context.Context, userID, newsID string) (*news_dto.LikeResponse, *app_error.AppError) {
	nid, parseErr := uuid.Parse(newsID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid news id", "newsId")
	}

	if _, err := s.NewsRepo.FindPostByID(ctx, nid); err != nil {
		return nil, err
	}

	liked, err := s.NewsRepo.HasLike(ctx, nid, userID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.NewsRepo.DeleteLike(ctx, nid, userID); err != nil {
			return nil, err
		}
		return &news_dto.LikeResponse{NewsID: newsID, Liked: false}, nil
	}

	if err := s.NewsRepo.CreateLike(ctx, nid, userID); err != nil {
		return nil, err
	}
	return &news_dto.LikeResponse{NewsID: newsID, Liked: true}, nil
}

func (s *NewsService) ToggleVote(ctx context.Context, userID, pollOptionID string) (*news_dto.VoteResponse, *app_error.AppError) {
	oid, parseErr := uuid.Parse(pollOptionID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid poll option id", "pollOptionId")
	}

	option, err := s.NewsRepo.FindPollOption(ctx, oid)
	if err != nil {
		return nil, err
	}

	existing, err := s.NewsRepo.FindVote(ctx, option.NewsPostID, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		vote := &entity.PollVote{
			NewsPostID:   option.NewsPostID,
			PollOptionID: oid,
			UserID:       userID,
		}
		if err := s.NewsRepo.CreateVote(ctx, vote); err != nil {
			return nil, err
		}
		return &news_dto.VoteResponse{PollOptionID: pollOptionID, Result: news_dto.VoteAdded}, nil

	case existing.PollOptionID == oid:
		// same option again removes the vote
		if err := s.NewsRepo.DeleteVote(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &news_dto.VoteResponse{PollOptionID: pollOptionID, Result: news_dto.VoteRemoved}, nil

	default:
		if err := s.NewsRepo.MoveVote(ctx, existing.ID, oid); err != nil {
			return nil, err
		}
		return &news_dto.VoteResponse{PollOptionID: pollOptionID, Result: news_dto.VoteMoved}, nil
	}
}

func (s *NewsService) SchoolNewsPermissions(ctx context.Context, userID, schoolID string) (*news_dto.NewsPermissionsResponse, *app_error.AppError) {
	sid, parseErr := uuid.Parse(schoolID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid school id", "schoolId")
	}

	canPost, err := s.canPostSchoolNews(ctx, sid, userID)
	if err != nil {
		return nil, err
	}
	return &news_dto.NewsPermissionsResponse{CanPostNews: canPost}, nil
}

func (s *NewsService) ClassNewsPermissions(ctx context.Context, userID, classID string) (*news_dto.NewsPermissionsResponse, *app_error.AppError) {
	cid, parseErr := uuid.Parse(classID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid class id", "classId")
	}

	canPost, err := s.canPostClassNews(ctx, cid, userID)
	if err != nil {
		return nil, err
	}
	return &news_dto.NewsPermissionsResponse{CanPostNews: canPost}, nil
}

// canPostSchoolNews: school admins or holders of the post_news
// permission row.
func (s *NewsService) canPostSchoolNews(ctx context.Context, schoolID uuid.UUID, userID string) (bool, *app_error.AppError) {
	isAdmin, err := s.SchoolRepo.IsSchoolAdmin(ctx, schoolID, userID)
	if err != nil {
		return false, err
	}
	if isAdmin {
		return true, nil
	}
	return s.SchoolRepo.HasSchoolPermission(ctx, schoolID, userID, entity.PermissionPostNews)
}

// canPostClassNews: the membership capability flag or the class-level
// permission row.
func (s *NewsService) canPostClassNews(ctx context.Context, classID uuid.UUID, userID string) (bool, *app_error.AppError) {
	membership, err := s.ClassRepo.FindMembership(ctx, classID, userID)
	if err != nil {
		return false, err
	}
	if membership != nil && membership.CanPostNews {
		return true, nil
	}
	return s.ClassRepo.HasClassPermission(ctx, classID, userID, entity.PermissionPostNews)
}

func (s *NewsService) decoratePosts(ctx context.Context, posts []*entity.NewsPost, userID string) ([]news_dto.NewsResponse, *app_error.AppError) {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	likeCounts, err := s.NewsRepo.CountLikes(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.NewsRepo.ListLikedPostIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	voteCounts, err := s.NewsRepo.CountVotesByOption(ctx, ids)
	if err != nil {
		return nil, err
	}
	votedOptions, err := s.NewsRepo.VotedOptions(ctx, ids, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]news_dto.NewsResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, s.toNewsResponse(post, likeCounts[post.ID], liked[post.ID], voteCounts, votedOptions[post.ID]))
	}
	return resp, nil
}

func (s *NewsService) toNewsResponse(post *entity.NewsPost, likeCount int64, liked bool, voteCounts map[uuid.UUID]int64, votedOption uuid.UUID) news_dto.NewsResponse {
	attachments := make([]string, 0, len(post.Attachments))
	for _, att := range post.Attachments {
		attachments = append(attachments, att.URL)
	}

	options := make([]news_dto.PollOptionResponse, 0, len(post.Options))
	for _, option := range post.Options {
		var count int64
		if voteCounts != nil {
			count = voteCounts[option.ID]
		}
		options = append(options, news_dto.PollOptionResponse{
			ID:        option.ID.String(),
			Text:      option.Text,
			Position:  option.Position,
			VoteCount: count,
			Voted:     option.ID == votedOption,
		})
	}

	resp := news_dto.NewsResponse{
		ID:          post.ID.String(),
		AuthorID:    post.AuthorID,
		Type:        post.Type,
		Title:       post.Title,
		Content:     post.Content,
		Attachments: attachments,
		PublishedAt: post.PublishedAt,
		LikeCount:   likeCount,
		Liked:       liked,
		Options:     options,
	}
	if post.SchoolID != nil {
		sid := post.SchoolID.String()
		resp.SchoolID = &sid
	}
	if post.ClassID != nil {
		cid := post.ClassID.String()
		resp.ClassID = &cid
	}
	return resp
}
