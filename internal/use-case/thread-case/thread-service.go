package thread_service

import (
	"context"
	"net/http"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/thread_dto"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	class_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/class"
	thread_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/thread"
	user_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/user"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/google/uuid"
)

const defaultMessagePageSize = 20

type ThreadService struct {
	AppState   *state.AppState
	ThreadRepo thread_repo.ThreadRepoContract
	ClassRepo  class_repo.ClassRepoContract
	UserRepo   user_repo.UserRepoContract

	// PollInterval is the sleep between retries of the long-poll query.
	PollInterval time.Duration
	// MaxPollTimeout caps the client-requested poll budget.
	MaxPollTimeout time.Duration
}

func NewThreadService(appState *state.AppState, pollInterval, maxPollTimeout time.Duration) ThreadServiceContract {
	return &ThreadService{
		AppState:       appState,
		ThreadRepo:     thread_repo.NewThreadRepo(appState),
		ClassRepo:      class_repo.NewClassRepo(appState),
		UserRepo:       user_repo.NewUserRepo(appState),
		PollInterval:   pollInterval,
		MaxPollTimeout: maxPollTimeout,
	}
}

func (s *ThreadService) ListThreads(ctx context.Context, userID string) ([]thread_dto.ThreadResponse, *app_error.AppError) {
	threads, err := s.ThreadRepo.ListThreadsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]thread_dto.ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		resp = append(resp, toThreadResponse(thread))
	}
	return resp, nil
}

func (s *ThreadService) CreateDirectThread(ctx context.Context, userID, otherUserID string) (*thread_dto.ThreadResponse, *app_error.AppError) {
	if otherUserID == "" || otherUserID == userID {
		return nil, app_error.BadRequest("otherUserId must reference another user", "otherUserId")
	}

	if _, err := s.UserRepo.FindUserByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	thread, err := s.ThreadRepo.GetOrCreateDirectThread(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	resp := toThreadResponse(thread)
	return &resp, nil
}

func (s *ThreadService) CreateGroupThread(ctx context.Context, userID, groupID string) (*thread_dto.ThreadResponse, *app_error.AppError) {
	gid, parseErr := uuid.Parse(groupID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid group id", "groupId")
	}

	if _, err := s.ClassRepo.FindGroupByID(ctx, gid); err != nil {
		return nil, err
	}

	isMember, err := s.ClassRepo.IsGroupMember(ctx, gid, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, app_error.Forbidden("You are not a member of this group")
	}

	memberIDs, err := s.ClassRepo.ListGroupMemberIDs(ctx, gid)
	if err != nil {
		return nil, err
	}

	thread, err := s.ThreadRepo.GetOrCreateGroupThread(ctx, gid, memberIDs)
	if err != nil {
		return nil, err
	}

	resp := toThreadResponse(thread)
	return &resp, nil
}

func (s *ThreadService) CreateClassThread(ctx context.Context, userID, classID string) (*thread_dto.ThreadResponse, *app_error.AppError) {
	cid, parseErr := uuid.Parse(classID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid class id", "classId")
	}

	if _, err := s.ClassRepo.FindClassByID(ctx, cid); err != nil {
		return nil, err
	}

	membership, err := s.ClassRepo.FindMembership(ctx, cid, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, app_error.Forbidden("You don't have access to this class")
	}

	memberIDs, err := s.ClassRepo.ListClassMemberIDs(ctx, cid)
	if err != nil {
		return nil, err
	}

	thread, err := s.ThreadRepo.GetOrCreateClassThread(ctx, cid, memberIDs)
	if err != nil {
		return nil, err
	}

	resp := toThreadResponse(thread)
	return &resp, nil
}

func (s *ThreadService) SendMessage(ctx context.Context, req thread_dto.SendMessageRequest, threadID, senderID string) (*thread_dto.MessageResponse, *app_error.AppError) {
	tid, parseErr := uuid.Parse(threadID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid thread id", "threadId")
	}

	isParticipant, err := s.ThreadRepo.IsParticipant(ctx, tid, senderID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, app_error.Forbidden("You are not a participant of this thread")
	}

	var parentID *uuid.UUID
	if req.ParentMessageID != nil {
		pid, parseErr := uuid.Parse(*req.ParentMessageID)
		if parseErr != nil {
			return nil, app_error.BadRequest("invalid parent message id", "parentMessageId")
		}

		parent, err := s.ThreadRepo.FindMessageByID(ctx, pid)
		if err != nil {
			if err.Code == http.StatusNotFound {
				return nil, app_error.NotFound("Parent message not found")
			}
			return nil, err
		}
		// a parent from another thread is treated as nonexistent
		if parent.ThreadID != tid {
			return nil, app_error.NotFound("Parent message not found")
		}
		// one level of nesting only
		if parent.ParentMessageID != nil {
			return nil, app_error.BadRequest("Replies to replies are not supported", "parentMessageId")
		}
		parentID = &pid
	}

	msg := &entity.Message{
		ID:              uuid.New(),
		ThreadID:        tid,
		SenderID:        senderID,
		Content:         req.Content,
		ParentMessageID: parentID,
	}

	if err := s.ThreadRepo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	resp := toMessageResponse(msg, entity.MessageStatusSent, nil, 0)
	return &resp, nil
}

func (s *ThreadService) GetThreadMessages(ctx context.Context, threadID, userID string, limit, offset int) (*thread_dto.GetMessagesResponse, *app_error.AppError) {
	tid, parseErr := uuid.Parse(threadID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid thread id", "threadId")
	}

	isParticipant, err := s.ThreadRepo.IsParticipant(ctx, tid, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, app_error.Forbidden("You are not a participant of this thread")
	}

	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.ThreadRepo.ListTopLevelMessages(ctx, tid, limit, offset)
	if err != nil {
		return nil, err
	}

	responses, err := s.buildMessageResponses(ctx, tid, messages)
	if err != nil {
		return nil, err
	}

	return &thread_dto.GetMessagesResponse{Messages: responses}, nil
}

func (s *ThreadService) MarkMessageAsRead(ctx context.Context, messageID, userID string) (*thread_dto.MarkReadResponse, *app_error.AppError) {
	mid, parseErr := uuid.Parse(messageID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid message id", "messageId")
	}

	msg, err := s.ThreadRepo.FindMessageByID(ctx, mid)
	if err != nil {
		return nil, err
	}

	isParticipant, err := s.ThreadRepo.IsParticipant(ctx, msg.ThreadID, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, app_error.Forbidden("You are not a participant of this thread")
	}

	if err := s.ThreadRepo.UpsertReadStatus(ctx, mid, userID); err != nil {
		return nil, err
	}

	participants, err := s.ThreadRepo.CountParticipants(ctx, msg.ThreadID)
	if err != nil {
		return nil, err
	}
	readCount, err := s.ThreadRepo.CountReadStatuses(ctx, mid)
	if err != nil {
		return nil, err
	}

	return &thread_dto.MarkReadResponse{
		MessageID: mid.String(),
		Status:    deriveStatus(readCount, participants),
	}, nil
}

func (s *ThreadService) PollNewMessages(ctx context.Context, threadID, userID string, since time.Time, timeout time.Duration) (*thread_dto.PollResponse, *app_error.AppError) {
	tid, parseErr := uuid.Parse(threadID)
	if parseErr != nil {
		return nil, app_error.BadRequest("invalid thread id", "threadId")
	}

	// access is verified once up front, not per iteration
	isParticipant, err := s.ThreadRepo.IsParticipant(ctx, tid, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, app_error.Forbidden("You are not a participant of this thread")
	}

	if timeout <= 0 || timeout > s.MaxPollTimeout {
		timeout = s.MaxPollTimeout
	}

	deadline := time.Now().Add(timeout)
	for {
		messages, err := s.ThreadRepo.ListMessagesSince(ctx, tid, since)
		if err != nil {
			return nil, err
		}

		if len(messages) > 0 {
			responses, err := s.buildMessageResponses(ctx, tid, messages)
			if err != nil {
				return nil, err
			}
			return &thread_dto.PollResponse{Messages: responses}, nil
		}

		if time.Now().Add(s.PollInterval).After(deadline) {
			return &thread_dto.PollResponse{Messages: []thread_dto.MessageResponse{}}, nil
		}

		select {
		case <-ctx.Done():
			return &thread_dto.PollResponse{Messages: []thread_dto.MessageResponse{}}, nil
		case <-time.After(s.PollInterval):
		}
	}
}

func (s *ThreadService) buildMessageResponses(ctx context.Context, threadID uuid.UUID, messages []*entity.Message) ([]thread_dto.MessageResponse, *app_error.AppError) {
	if len(messages) == 0 {
		return []thread_dto.MessageResponse{}, nil
	}

	participants, err := s.ThreadRepo.CountParticipants(ctx, threadID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}

	replies, err := s.ThreadRepo.ListReplies(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, children := range replies {
		for _, child := range children {
			ids = append(ids, child.ID)
		}
	}

	readCounts, err := s.ThreadRepo.CountReadStatusesForMessages(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]thread_dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		children := replies[msg.ID]
		childResponses := make([]thread_dto.MessageResponse, 0, len(children))
		for _, child := range children {
			childResponses = append(childResponses, toMessageResponse(child, deriveStatus(readCounts[child.ID], participants), nil, 0))
		}
		responses = append(responses, toMessageResponse(msg, deriveStatus(readCounts[msg.ID], participants), childResponses, len(children)))
	}
	return responses, nil
}

// deriveStatus computes the shared SENT/SEEN view from receipt coverage:
// every participant except the sender has a receipt.
func deriveStatus(readCount, participantCount int64) string {
	if participantCount > 1 && readCount >= participantCount-1 {
		return entity.MessageStatusSeen
	}
	return entity.MessageStatusSent
}

func toThreadResponse(thread *entity.Thread) thread_dto.ThreadResponse {
	participantIDs := make([]string, 0, len(thread.Participants))
	for _, p := range thread.Participants {
		participantIDs = append(participantIDs, p.UserID)
	}

	resp := thread_dto.ThreadResponse{
		ThreadID:       thread.ID.String(),
		Kind:           thread.Kind,
		ParticipantIDs: participantIDs,
		CreatedAt:      thread.CreatedAt,
		UpdatedAt:      thread.UpdatedAt,
	}
	if thread.GroupID != nil {
		gid := thread.GroupID.String()
		resp.GroupID = &gid
	}
	if thread.ClassID != nil {
		cid := thread.ClassID.String()
		resp.ClassID = &cid
	}
	return resp
}

func toMessageResponse(msg *entity.Message, status string, replies []thread_dto.MessageResponse, replyCount int) thread_dto.MessageResponse {
	resp := thread_dto.MessageResponse{
		MessageID:  msg.ID.String(),
		ThreadID:   msg.ThreadID.String(),
		SenderID:   msg.SenderID,
		Content:    msg.Content,
		Status:     status,
		CreatedAt:  msg.CreatedAt,
		Replies:    replies,
		ReplyCount: replyCount,
	}
	if msg.ParentMessageID != nil {
		pid := msg.ParentMessageID.String()
		resp.ParentMessageID = &pid
	}
	return resp
}
