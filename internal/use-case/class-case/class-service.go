package class_service

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/class_dto"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	class_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/class"
	user_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/user"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
)

type ClassService struct {
	AppState  *state.AppState
	ClassRepo class_repo.ClassRepoContract
	UserRepo  user_repo.UserRepoContract
}

func NewClassService(appState *state.AppState) ClassServiceContract {
	return &ClassService{
		AppState:  appState,
		ClassRepo: class_repo.NewClassRepo(appState),
		UserRepo:  user_repo.NewUserRepo(appState),
	}
}

func (s *ClassService) ListClasses(ctx context.Context, userID string) ([]class_dto.ClassResponse, *app_error.AppError) {
	classes, err := s.ClassRepo.ListClassesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]class_dto.ClassResponse, 0, len(classes))
	for _, class := range classes {
		resp = append(resp, class_dto.ClassResponse{
			ID:       class.ID.String(),
			SchoolID: class.SchoolID.String(),
			Name:     class.Name,
		})
	}
	return resp, nil
}

func (s *ClassService) ListClassMembers(ctx context.Context, userID, classID string) ([]class_dto.ClassMemberResponse, *app_error.AppError) {
	cid, _, err := s.requireMembership(ctx, userID, classID)
	if err != nil {
		return nil, err
	}

	members, err := s.ClassRepo.ListClassMembers(ctx, cid)
	if err != nil {
		return nil, err
	}

	resp := make([]class_dto.ClassMemberResponse, 0, len(members))
	for _, member := range members {
		resp = append(resp, class_dto.ClassMemberResponse{
			UserID:            member.UserID,
			Username:          member.User.Username,
			FirstName:         member.User.FirstName,
			LastName:          member.User.LastName,
			Role:              member.Role,
			CanPostNews:       member.CanPostNews,
			CanCreateGroups:   member.CanCreateGroups,
			CanDeleteMessages: member.CanDeleteMessages,
		})
	}
	return resp, nil
}

func (s *ClassService) ListGroups(ctx context.Context, userID, classID string) ([]class_dto.GroupResponse, *app_error.AppError) {
	cid, _, err := s.requireMembership(ctx, userID, classID)
	if err != nil {
		return nil, err
	}

	groups, err := s.ClassRepo.ListGroups(ctx, cid)
	if err != nil {
		return nil, err
	}

	resp := make([]class_dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		resp = append(resp, toGroupResponse(group))
	}
	return resp, nil
}

// CreateGroup distinguishes missing class access from a missing
// capability flag; both are 403 but with different messages.
func (s *ClassService) CreateGroup(ctx context.Context, req class_dto.CreateGroupRequest, userID, classID string) (*class_dto.GroupResponse, *app_error.AppError) {
	cid, membership, err := s.requireMembership(ctx, userID, classID)
	if err != nil {
		return nil, err
	}

	if !membership.CanCreateGroups {
		return nil, app_error.Forbidden("You don't have permission to create groups in this class")
	}

	group := &entity.Group{
		ID:          uuid.New(),
		ClassID:     cid,
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.ClassRepo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	resp := toGroupResponse(group)
	return &resp, nil
}

// AddGroupMember requires the caller to be a group member and the new
// user to belong to the group's class.
func (s *ClassService) AddGroupMember(ctx context.Context, req class_dto.AddGroupMemberRequest, userID, groupID string) (*class_dto.GroupMemberResponse, *app_error.AppError) {
	gid, parseErr := uuid.Parse(groupID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid group id", "groupId")
	}

	group, err := s.ClassRepo.FindGroupByID(ctx, gid)
	if err != nil {
		return nil, err
	}

	isMember, err := s.ClassRepo.IsGroupMember(ctx, gid, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, app_error.Forbidden("You are not a member of this group")
	}

	user, err := s.UserRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	targetMembership, err := s.ClassRepo.FindMembership(ctx, group.ClassID, user.ID)
	if err != nil {
		return nil, err
	}
	if targetMembership == nil {
		return nil, app_error.Forbidden("User is not a member of this class")
	}

	if err := s.ClassRepo.AddGroupMember(ctx, gid, user.ID); err != nil {
		return nil, err
	}

	return &class_dto.GroupMemberResponse{
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

func (s *ClassService) requireMembership(ctx context.Context, userID, classID string) (uuid.UUID, *entity.ClassMembership, *app_error.AppError) {
	cid, parseErr := uuid.Parse(classID)
	if parseErr != nil {
		return uuid.Nil, nil, app_error.BadRequest("invalid class id", "classId")
	}

	if _, err := s.ClassRepo.FindClassByID(ctx, cid); err != nil {
		return uuid.Nil, nil, err
	}

	membership, err := s.ClassRepo.FindMembership(ctx, cid, userID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if membership == nil {
		return uuid.Nil, nil, app_error.Forbidden("You don't have access to this class")
	}
	return cid, membership, nil
}

func toGroupResponse(group *entity.Group) class_dto.GroupResponse {
	return class_dto.GroupResponse{
		ID:          group.ID.String(),
		ClassID:     group.ClassID.String(),
		OwnerID:     group.OwnerID,
		Name:        group.Name,
		Description: group.Description,
		CreatedAt:   group.CreatedAt,
	}
}
