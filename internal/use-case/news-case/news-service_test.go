package news_service

import (
	"context"
	"net/http"
	"testing"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/news_dto"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNewsRepo struct {
	posts      map[uuid.UUID]*entity.NewsPost
	likes      map[uuid.UUID]map[string]bool
	votes      []*entity.PollVote
	nextVoteID int64
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{
		posts: make(map[uuid.UUID]*entity.NewsPost),
		likes: make(map[uuid.UUID]map[string]bool),
	}
}

func (r *fakeNewsRepo) CreatePost(ctx context.Context, post *entity.NewsPost) *app_error.AppError {
	for i := range post.Options {
		post.Options[i].NewsPostID = post.ID
	}
	r.posts[post.ID] = post
	return nil
}

func (r *fakeNewsRepo) FindPostByID(ctx context.Context, newsID uuid.UUID) (*entity.NewsPost, *app_error.AppError) {
	post, ok := r.posts[newsID]
	if !ok {
		return nil, app_error.NotFound("news post not found")
	}
	return post, nil
}

func (r *fakeNewsRepo) ListSchoolPosts(ctx context.Context, schoolID uuid.UUID) ([]*entity.NewsPost, *app_error.AppError) {
	var out []*entity.NewsPost
	for _, post := range r.posts {
		if post.SchoolID != nil && *post.SchoolID == schoolID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (r *fakeNewsRepo) ListClassPosts(ctx context.Context, classID uuid.UUID) ([]*entity.NewsPost, *app_error.AppError) {
	var out []*entity.NewsPost
	for _, post := range r.posts {
		if post.ClassID != nil && *post.ClassID == classID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (r *fakeNewsRepo) DeletePost(ctx context.Context, newsID uuid.UUID) *app_error.AppError {
	delete(r.posts, newsID)
	delete(r.likes, newsID)
	kept := r.votes[:0]
	for _, vote := range r.votes {
		if vote.NewsPostID != newsID {
			kept = append(kept, vote)
		}
	}
	r.votes = kept
	return nil
}

func (r *fakeNewsRepo) HasLike(ctx context.Context, newsID uuid.UUID, userID string) (bool, *app_error.AppError) {
	return r.likes[newsID][userID], nil
}

func (r *fakeNewsRepo) CreateLike(ctx context.Context, newsID uuid.UUID, userID string) *app_error.AppError {
	if r.likes[newsID] == nil {
		r.likes[newsID] = make(map[string]bool)
	}
	r.likes[newsID][userID] = true
	return nil
}

func (r *fakeNewsRepo) DeleteLike(ctx context.Context, newsID uuid.UUID, userID string) *app_error.AppError {
	delete(r.likes[newsID], userID)
	return nil
}

func (r *fakeNewsRepo) CountLikes(ctx context.Context, newsIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError) {
	out := make(map[uuid.UUID]int64)
	for _, id := range newsIDs {
		if n := len(r.likes[id]); n > 0 {
			out[id] = int64(n)
		}
	}
	return out, nil
}

func (r *fakeNewsRepo) ListLikedPostIDs(ctx context.Context, newsIDs []uuid.UUID, userID string) (map[uuid.UUID]bool, *app_error.AppError) {
	out := make(map[uuid.UUID]bool)
	for _, id := range newsIDs {
		if r.likes[id][userID] {
			out[id] = true
		}
	}
	return out, nil
}

func (r *fakeNewsRepo) FindPollOption(ctx context.Context, optionID uuid.UUID) (*entity.PollOption, *app_error.AppError) {
	for _, post := range r.posts {
		for i := range post.Options {
			if post.Options[i].ID == optionID {
				return &post.Options[i], nil
			}
		}
	}
	return nil, app_error.NotFound("poll option not found")
}

func (r *fakeNewsRepo) FindVote(ctx context.Context, newsID uuid.UUID, userID string) (*entity.PollVote, *app_error.AppError) {
	for _, vote := range r.votes {
		if vote.NewsPostID == newsID && vote.UserID == userID {
			return vote, nil
		}
	}
	return nil, nil
}

func (r *fakeNewsRepo) CreateVote(ctx context.Context, vote *entity.PollVote) *app_error.AppError {
	r.nextVoteID++
	vote.ID = r.nextVoteID
	r.votes = append(r.votes, vote)
	return nil
}

func (r *fakeNewsRepo) MoveVote(ctx context.Context, voteID int64, optionID uuid.UUID) *app_error.AppError {
	for _, vote := range r.votes {
		if vote.ID == voteID {
			vote.PollOptionID = optionID
			return nil
		}
	}
	return app_error.NotFound("vote not found")
}

func (r *fakeNewsRepo) DeleteVote(ctx context.Context, voteID int64) *app_error.AppError {
	kept := r.votes[:0]
	for _, vote := range r.votes {
		if vote.ID != voteID {
			kept = append(kept, vote)
		}
	}
	r.votes = kept
	return nil
}

func (r *fakeNewsRepo) CountVotesByOption(ctx context.Context, newsIDs []uuid.UUID) (map[uuid.UUID]int64, *app_error.AppError) {
	wanted := make(map[uuid.UUID]bool, len(newsIDs))
	for _, id := range newsIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]int64)
	for _, vote := range r.votes {
		if wanted[vote.NewsPostID] {
			out[vote.PollOptionID]++
		}
	}
	return out, nil
}

func (r *fakeNewsRepo) VotedOptions(ctx context.Context, newsIDs []uuid.UUID, userID string) (map[uuid.UUID]uuid.UUID, *app_error.AppError) {
	wanted := make(map[uuid.UUID]bool, len(newsIDs))
	for _, id := range newsIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]uuid.UUID)
	for _, vote := range r.votes {
		if wanted[vote.NewsPostID] && vote.UserID == userID {
			out[vote.NewsPostID] = vote.PollOptionID
		}
	}
	return out, nil
}

type fakeSchoolRepo struct {
	schools     map[uuid.UUID]*entity.School
	members     map[uuid.UUID]map[string]string // school -> user -> role
	permissions map[uuid.UUID]map[string]map[string]bool
}

func newFakeSchoolRepo() *fakeSchoolRepo {
	return &fakeSchoolRepo{
		schools:     make(map[uuid.UUID]*entity.School),
		members:     make(map[uuid.UUID]map[string]string),
		permissions: make(map[uuid.UUID]map[string]map[string]bool),
	}
}

func (r *fakeSchoolRepo) addSchool() *entity.School {
	school := &entity.School{ID: uuid.New(), Name: "Northside Elementary"}
	r.schools[school.ID] = school
	r.members[school.ID] = make(map[string]string)
	r.permissions[school.ID] = make(map[string]map[string]bool)
	return school
}

func (r *fakeSchoolRepo) addMember(schoolID uuid.UUID, userID, role string) {
	r.members[schoolID][userID] = role
}

func (r *fakeSchoolRepo) grant(schoolID uuid.UUID, userID, permission string) {
	if r.permissions[schoolID][userID] == nil {
		r.permissions[schoolID][userID] = make(map[string]bool)
	}
	r.permissions[schoolID][userID][permission] = true
}

func (r *fakeSchoolRepo) FindSchoolByID(ctx context.Context, schoolID uuid.UUID) (*entity.School, *app_error.AppError) {
	school, ok := r.schools[schoolID]
	if !ok {
		return nil, app_error.NotFound("school not found")
	}
	return school, nil
}

func (r *fakeSchoolRepo) ListSchoolsForUser(ctx context.Context, userID string) ([]*entity.School, *app_error.AppError) {
	var out []*entity.School
	for id, members := range r.members {
		if _, ok := members[userID]; ok {
			out = append(out, r.schools[id])
		}
	}
	return out, nil
}

func (r *fakeSchoolRepo) ListSchoolUsers(ctx context.Context, schoolID uuid.UUID) ([]*entity.User, *app_error.AppError) {
	var out []*entity.User
	for id := range r.members[schoolID] {
		out = append(out, &entity.User{ID: id})
	}
	return out, nil
}

func (r *fakeSchoolRepo) IsSchoolMember(ctx context.Context, schoolID uuid.UUID, userID string) (bool, *app_error.AppError) {
	_, ok := r.members[schoolID][userID]
	return ok, nil
}

func (r *fakeSchoolRepo) IsSchoolAdmin(ctx context.Context, schoolID uuid.UUID, userID string) (bool, *app_error.AppError) {
	return r.members[schoolID][userID] == entity.SchoolRoleAdmin, nil
}

func (r *fakeSchoolRepo) HasSchoolPermission(ctx context.Context, schoolID uuid.UUID, userID, permission string) (bool, *app_error.AppError) {
	return r.permissions[schoolID][userID][permission], nil
}

type fakeClassRepoForNews struct {
	memberships map[uuid.UUID]map[string]*entity.ClassMembership
	permissions map[uuid.UUID]map[string]map[string]bool
}

func newFakeClassRepoForNews() *fakeClassRepoForNews {
	return &fakeClassRepoForNews{
		memberships: make(map[uuid.UUID]map[string]*entity.ClassMembership),
		permissions: make(map[uuid.UUID]map[string]map[string]bool),
	}
}

func (r *fakeClassRepoForNews) addMembership(classID uuid.UUID, userID string, canPostNews bool) {
	if r.memberships[classID] == nil {
		r.memberships[classID] = make(map[string]*entity.ClassMembership)
	}
	r.memberships[classID][userID] = &entity.ClassMembership{
		ClassID:     classID,
		UserID:      userID,
		Role:        entity.ClassRoleParent,
		CanPostNews: canPostNews,
	}
}

func (r *fakeClassRepoForNews) grant(classID uuid.UUID, userID, permission string) {
	if r.permissions[classID] == nil {
		r.permissions[classID] = make(map[string]map[string]bool)
	}
	if r.permissions[classID][userID] == nil {
		r.permissions[classID][userID] = make(map[string]bool)
	}
	r.permissions[classID][userID][permission] = true
}

func (r *fakeClassRepoForNews) FindClassByID(ctx context.Context, classID uuid.UUID) (*entity.Class, *app_error.AppError) {
	return &entity.Class{ID: classID}, nil
}

func (r *fakeClassRepoForNews) ListClassesForUser(ctx context.Context, userID string) ([]*entity.Class, *app_error.AppError) {
	return nil, nil
}

func (r *fakeClassRepoForNews) FindMembership(ctx context.Context, classID uuid.UUID, userID string) (*entity.ClassMembership, *app_error.AppError) {
	return r.memberships[classID][userID], nil
}

func (r *fakeClassRepoForNews) ListClassMembers(ctx context.Context, classID uuid.UUID) ([]*entity.ClassMembership, *app_error.AppError) {
	return nil, nil
}

func (r *fakeClassRepoForNews) ListClassMemberIDs(ctx context.Context, classID uuid.UUID) ([]string, *app_error.AppError) {
	return nil, nil
}

func (r *fakeClassRepoForNews) HasClassPermission(ctx context.Context, classID uuid.UUID, userID, permission string) (bool, *app_error.AppError) {
	return r.permissions[classID][userID][permission], nil
}

func (r *fakeClassRepoForNews) FindGroupByID(ctx context.Context, groupID uuid.UUID) (*entity.Group, *app_error.AppError) {
	return nil, app_error.NotFound("group not found")
}

func (r *fakeClassRepoForNews) ListGroups(ctx context.Context, classID uuid.UUID) ([]*entity.Group, *app_error.AppError) {
	return nil, nil
}

func (r *fakeClassRepoForNews) CreateGroup(ctx context.Context, group *entity.Group) *app_error.AppError {
	return nil
}

func (r *fakeClassRepoForNews) IsGroupMember(ctx context.Context, groupID uuid.UUID, userID string) (bool, *app_error.AppError) {
	return false, nil
}

func (r *fakeClassRepoForNews) AddGroupMember(ctx context.Context, groupID uuid.UUID, userID string) *app_error.AppError {
	return nil
}

func (r *fakeClassRepoForNews) ListGroupMembers(ctx context.Context, groupID uuid.UUID) ([]*entity.GroupMembership, *app_error.AppError) {
	return nil, nil
}

func (r *fakeClassRepoForNews) ListGroupMemberIDs(ctx context.Context, groupID uuid.UUID) ([]string, *app_error.AppError) {
	return nil, nil
}

func newTestNewsService(newsRepo *fakeNewsRepo, schoolRepo *fakeSchoolRepo, classRepo *fakeClassRepoForNews) *NewsService {
	return &NewsService{
		NewsRepo:   newsRepo,
		SchoolRepo: schoolRepo,
		ClassRepo:  classRepo,
	}
}

func strPtr(s string) *string { return &s }

func TestCreatePost_RequiresExactlyOneScope(t *testing.T) {
	service := newTestNewsService(newFakeNewsRepo(), newFakeSchoolRepo(), newFakeClassRepoForNews())
	ctx := context.Background()

	_, appErr := service.CreatePost(ctx, news_dto.CreateNewsRequest{
		Type:  entity.NewsTypeAnnouncement,
		Title: "no scope",
	}, "alice")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	_, appErr = service.CreatePost(ctx, news_dto.CreateNewsRequest{
		SchoolID: strPtr(uuid.NewString()),
		ClassID:  strPtr(uuid.NewString()),
		Type:     entity.NewsTypeAnnouncement,
		Title:    "both scopes",
	}, "alice")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestCreatePost_SchoolPermissionPaths(t *testing.T) {
	schoolRepo := newFakeSchoolRepo()
	school := schoolRepo.addSchool()
	schoolRepo.addMember(school.ID, "admin", entity.SchoolRoleAdmin)
	schoolRepo.addMember(school.ID, "editor", entity.SchoolRoleMember)
	schoolRepo.addMember(school.ID, "parent", entity.SchoolRoleMember)
	schoolRepo.grant(school.ID, "editor", entity.PermissionPostNews)

	service := newTestNewsService(newFakeNewsRepo(), schoolRepo, newFakeClassRepoForNews())
	ctx := context.Background()
	sid := school.ID.String()

	// admins post by role
	post, appErr := service.CreatePost(ctx, news_dto.CreateNewsRequest{
		SchoolID: &sid, Type: entity.NewsTypeAnnouncement, Title: "welcome",
	}, "admin")
	require.Nil(t, appErr)
	assert.Equal(t, "admin", post.AuthorID)

	// members post through the permission row
	_, appErr = service.CreatePost(ctx, news_dto.CreateNewsRequest{
		SchoolID: &sid, Type: entity.NewsTypeAnnouncement, Title: "lunch menu",
	}, "editor")
	require.Nil(t, appErr)

	// plain members may not
	_, appErr = service.CreatePost(ctx, news_dto.CreateNewsRequest{
		SchoolID: &sid, Type: entity.NewsTypeAnnouncement, Title: "nope",
	}, "parent")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestCreatePost_PollNeedsTwoOptions(t *testing.T) {
	schoolRepo := newFakeSchoolRepo()
	school := schoolRepo.addSchool()
	schoolRepo.addMember(school.ID, "admin", entity.SchoolRoleAdmin)
	service := newTestNewsService(newFakeNewsRepo(), schoolRepo, newFakeClassRepoForNews())
	sid := school.ID.String()

	_, appErr := service.CreatePost(context.Background(), news_dto.CreateNewsRequest{
		SchoolID:    &sid,
		Type:        entity.NewsTypePoll,
		Title:       "trip date",
		PollOptions: []string{"friday"},
	}, "admin")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	schoolRepo := newFakeSchoolRepo()
	school := schoolRepo.addSchool()
	schoolRepo.addMember(school.ID, "admin", entity.SchoolRoleAdmin)
	schoolRepo.addMember(school.ID, "other-admin", entity.SchoolRoleAdmin)
	service := newTestNewsService(newFakeNewsRepo(), schoolRepo, newFakeClassRepoForNews())
	ctx := context.Background()
	sid := school.ID.String()

	post, appErr := service.CreatePost(ctx, news_dto.CreateNewsRequest{
		SchoolID: &sid, Type: entity.NewsTypeAnnouncement, Title: "mine",
	}, "admin")
	require.Nil(t, appErr)

	appErr = service.DeletePost(ctx, "other-admin", post.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
	assert.Equal(t, "Only the author can delete this post", appErr.Message)

	require.Nil(t, service.DeletePost(ctx, "admin", post.ID))

	appErr = service.DeletePost(ctx, "admin", post.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	schoolRepo := newFakeSchoolRepo()
	school := schoolRepo.addSchool()
	schoolRepo.addMember(school.ID, "admin", entity.SchoolRoleAdmin)
	schoolRepo.addMember(school.ID, "parent", entity.SchoolRoleMember)
	service := newTestNewsService(newFakeNewsRepo(), schoolRepo, newFakeClassRepoForNews())
	ctx := context.Background()
	sid := school.ID.String()

	post, appErr := service.CreatePost(ctx, news_dto.CreateNewsRequest{
		SchoolID: &sid, Type: entity.NewsTypeAnnouncement, Title: "bake sale",
	}, "admin")
	require.Nil(t, appErr)

	liked, appErr := service.ToggleLike(ctx, "parent", post.ID)
	require.Nil(t, appErr)
	assert.True(t, liked.Liked)

	liked, appErr = service.ToggleLike(ctx, "parent", post.ID)
	require.Nil(t, appErr)
	assert.False(t, liked.Liked)

	_, appErr = service.ToggleLike(ctx, "parent", uuid.NewString())
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestToggleVote_AddMoveRemove(t *testing.T) {
	schoolRepo := newFakeSchoolRepo()
	school := schoolRepo.addSchool()
	schoolRepo.addMember(school.ID, "admin", entity.SchoolRoleAdmin)
	schoolRepo.addMember(school.ID, "parent", entity.SchoolRoleMember)
	newsRepo := newFakeNewsRepo()
	service := newTestNewsService(newsRepo, schoolRepo, newFakeClassRepoForNews())
	ctx := context.Background()
	sid := school.ID.String()

	post, appErr := service.CreatePost(ctx, news_dto.CreateNewsRequest{
		SchoolID:    &sid,
		Type:        entity.NewsTypePoll,
		Title:       "trip date",
		PollOptions: []string{"friday", "saturday"},
	}, "admin")
	require.Nil(t, appErr)
	require.Len(t, post.Options, 2)
	friday := post.Options[0].ID
	saturday := post.Options[1].ID

	vote, appErr := service.ToggleVote(ctx, "parent", friday)
	require.Nil(t, appErr)
	assert.Equal(t, news_dto.VoteAdded, vote.Result)

	// voting for the other option moves the existing vote
	vote, appErr = service.ToggleVote(ctx, "parent", saturday)
	require.Nil(t, appErr)
	assert.Equal(t, news_dto.VoteMoved, vote.Result)

	counts, appErr := newsRepo.CountVotesByOption(ctx, []uuid.UUID{uuid.MustParse(post.ID)})
	require.Nil(t, appErr)
	assert.Equal(t, int64(0), counts[uuid.MustParse(friday)])
	assert.Equal(t, int64(1), counts[uuid.MustParse(saturday)])

	// voting for the same option again removes the vote
	vote, appErr = service.ToggleVote(ctx, "parent", saturday)
	require.Nil(t, appErr)
	assert.Equal(t, news_dto.VoteRemoved, vote.Result)

	counts, appErr = newsRepo.CountVotesByOption(ctx, []uuid.UUID{uuid.MustParse(post.ID)})
	require.Nil(t, appErr)
	assert.Empty(t, counts)
}

func TestClassNewsPermissions_FlagOrPermissionRow(t *testing.T) {
	classRepo := newFakeClassRepoForNews()
	classID := uuid.New()
	classRepo.addMembership(classID, "teacher", true)
	classRepo.addMembership(classID, "parent", false)
	classRepo.addMembership(classID, "aide", false)
	classRepo.grant(classID, "aide", entity.PermissionPostNews)

	service := newTestNewsService(newFakeNewsRepo(), newFakeSchoolRepo(), classRepo)
	ctx := context.Background()

	resp, appErr := service.ClassNewsPermissions(ctx, "teacher", classID.String())
	require.Nil(t, appErr)
	assert.True(t, resp.CanPostNews)

	resp, appErr = service.ClassNewsPermissions(ctx, "aide", classID.String())
	require.Nil(t, appErr)
	assert.True(t, resp.CanPostNews)

	resp, appErr = service.ClassNewsPermissions(ctx, "parent", classID.String())
	require.Nil(t, appErr)
	assert.False(t, resp.CanPostNews)
}

func TestListClassPosts_RequiresMembership(t *testing.T) {
	classRepo := newFakeClassRepoForNews()
	classID := uuid.New()
	classRepo.addMembership(classID, "parent", false)
	service := newTestNewsService(newFakeNewsRepo(), newFakeSchoolRepo(), classRepo)

	_, appErr := service.ListClassPosts(context.Background(), "outsider", classID.String())
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}
