package school_service

import (
	"context"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/school_dto"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	school_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/school"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
)

type SchoolService struct {
	AppState   *state.AppState
	SchoolRepo school_repo.SchoolRepoContract
}

func NewSchoolService(appState *state.AppState) SchoolServiceContract {
	return &SchoolService{
		AppState:   appState,
		SchoolRepo: school_repo.NewSchoolRepo(appState),
	}
}

func (s *SchoolService) ListSchools(ctx context.Context, userID string) ([]school_dto.SchoolResponse, *app_error.AppError) {
	schools, err := s.SchoolRepo.ListSchoolsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]school_dto.SchoolResponse, 0, len(schools))
	for _, school := range schools {
		resp = append(resp, school_dto.SchoolResponse{
			ID:        school.ID.String(),
			Name:      school.Name,
			Address:   school.Address,
			LogoURL:   school.LogoURL,
			CreatedAt: school.CreatedAt,
		})
	}
	return resp, nil
}

func (s *SchoolService) ListSchoolUsers(ctx context.Context, userID, schoolID string) ([]school_dto.UserResponse, *app_error.AppError) {
	sid, parseErr := uuid.Parse(schoolID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid school id", "schoolId")
	}

	if _, err := s.SchoolRepo.FindSchoolByID(ctx, sid); err != nil {
		return nil, err
	}

	isMember, err := s.SchoolRepo.IsSchoolMember(ctx, sid, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, app_error.Forbidden("You don't have access to this school")
	}

	users, err := s.SchoolRepo.ListSchoolUsers(ctx, sid)
	if err != nil {
		return nil, err
	}

	return toUserResponses(users), nil
}

func toUserResponses(users []*entity.User) []school_dto.UserResponse {
	resp := make([]school_dto.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, school_dto.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Phone:     user.Phone,
		})
	}
	return resp
}
