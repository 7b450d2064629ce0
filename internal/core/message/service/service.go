package messageapp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/config"
	messageEntity "github.com/wiky-avis/Yatube/internal/core/message"
	userEntity "github.com/wiky-avis/Yatube/internal/core/user"
	messagePort "github.com/wiky-avis/Yatube/internal/ports/message"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

// MessageService manages private threads between two users. Callers pass
// ids of already authenticated users.
type MessageService struct {
	TopicRepository messagePort.TopicRepository
	UserRepository  userPort.UserRepository
	Now             func() time.Time
}

func NewMessageService(topicRepo messagePort.TopicRepository, userRepo userPort.UserRepository) *MessageService {
	return &MessageService{
		TopicRepository: topicRepo,
		UserRepository:  userRepo,
		Now:             time.Now,
	}
}

// now is truncated to microseconds so timestamps survive a round trip
// through every supported database unchanged.
func (s *MessageService) now() time.Time {
	return s.Now().UTC().Truncate(time.Microsecond)
}

// TopicsForUser lists the threads the user takes part in, most recently
// active first.
func (s *MessageService) TopicsForUser(ctx context.Context, userID string) ([]*messagePort.TopicDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	topics, err := s.TopicRepository.ListForUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	dtos := make([]*messagePort.TopicDTO, 0, len(topics))
	for _, t := range topics {
		dtos = append(dtos, messagePort.TopicToDTO(t))
	}
	return dtos, nil
}

// Inbox is the message list view: threads plus unread and total counts.
func (s *MessageService) Inbox(ctx context.Context, userID string) (*messagePort.InboxDTO, error) {
	topics, err := s.TopicsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.UnreadCount(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	total, err := s.CountTopics(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &messagePort.InboxDTO{Topics: topics, Unread: unread, Total: total}, nil
}

func (s *MessageService) CountTopics(ctx context.Context, userID string) (int64, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return 0, userEntity.ErrUserNotFound
	}
	return s.TopicRepository.CountForUser(ctx, uid)
}

// CheckRecipient validates that username names an existing user.
func (s *MessageService) CheckRecipient(ctx context.Context, username string) messagePort.RecipientCheck {
	username = strings.TrimSpace(username)
	if username == "" {
		return messagePort.RecipientCheck{Reason: "recipient is required"}
	}
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userEntity.ErrUserNotFound) {
			return messagePort.RecipientCheck{Reason: "no user named " + username}
		}
		config.Logger.Error("Recipient lookup failed", zap.String("username", username), zap.Error(err))
		return messagePort.RecipientCheck{Reason: "recipient lookup failed"}
	}
	return messagePort.RecipientCheck{Recipient: userPort.ToDTO(u), OK: true}
}

// CreateTopic starts a thread with its first message. The topic and the
// message share one timestamp and are stored atomically.
func (s *MessageService) CreateTopic(ctx context.Context, senderID, recipientUsername, subject, body string) (*messagePort.TopicDTO, error) {
	sid, err := uuid.FromString(senderID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	if strings.TrimSpace(body) == "" {
		return nil, messageEntity.ErrEmptyBody
	}
	check := s.CheckRecipient(ctx, recipientUsername)
	if !check.OK {
		return nil, messageEntity.ErrRecipientNotFound
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = messageEntity.DefaultSubject
	}

	now := s.now()
	t := &messageEntity.Topic{
		SenderID:    sid,
		RecipientID: uuid.FromStringOrNil(check.Recipient.ID),
		Subject:     subject,
		LastSentAt:  now,
	}
	m := &messageEntity.Message{
		SenderID: sid,
		Body:     body,
		SentAt:   now,
	}
	if err := s.TopicRepository.CreateWithMessage(ctx, t, m); err != nil {
		return nil, err
	}
	config.Logger.Info("Created topic", zap.String("topicID", t.ID.String()), zap.String("senderID", senderID))

	created, err := s.TopicRepository.FindByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return messagePort.TopicToDTO(created), nil
}

// AppendMessage adds a reply to a thread the sender takes part in.
func (s *MessageService) AppendMessage(ctx context.Context, topicID, senderID, body string) (*messagePort.MessageDTO, error) {
	sid, err := uuid.FromString(senderID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	t, err := s.findTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if !t.HasParticipant(sid) {
		return nil, messageEntity.ErrNotParticipant
	}
	if strings.TrimSpace(body) == "" {
		return nil, messageEntity.ErrEmptyBody
	}

	m := &messageEntity.Message{
		TopicID:  t.ID,
		SenderID: sid,
		Body:     body,
		SentAt:   s.now(),
	}
	if err := s.TopicRepository.AddMessage(ctx, m); err != nil {
		return nil, err
	}
	return messagePort.MessageToDTO(m), nil
}

// ReadTopic returns the thread, newest message first, and marks it read for
// userID. Non-participants get ErrTopicNotFound.
func (s *MessageService) ReadTopic(ctx context.Context, userID, topicID string) (*messagePort.ThreadDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	t, err := s.findTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if !t.HasParticipant(uid) {
		return nil, messageEntity.ErrTopicNotFound
	}

	msgs, err := s.TopicRepository.Messages(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	thread := &messagePort.ThreadDTO{
		Topic:    messagePort.TopicToDTO(t),
		Messages: make([]*messagePort.MessageDTO, 0, len(msgs)),
	}
	for _, m := range msgs {
		thread.Messages = append(thread.Messages, messagePort.MessageToDTO(m))
	}

	if _, err := s.TopicRepository.MarkRead(ctx, t.ID, uid, s.now()); err != nil {
		return nil, err
	}
	return thread, nil
}

// UnreadCount counts messages addressed to userID that are still unread,
// across all threads or only in topicID.
func (s *MessageService) UnreadCount(ctx context.Context, userID string, topicID *string) (int64, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return 0, userEntity.ErrUserNotFound
	}
	var tid *uuid.UUID
	if topicID != nil {
		id, err := uuid.FromString(*topicID)
		if err != nil {
			return 0, messageEntity.ErrTopicNotFound
		}
		tid = &id
	}
	return s.TopicRepository.UnreadCount(ctx, uid, tid)
}

// MarkRead stamps every unread message in the topic that userID did not send.
// Calling it again changes nothing.
func (s *MessageService) MarkRead(ctx context.Context, userID, topicID string) error {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return userEntity.ErrUserNotFound
	}
	t, err := s.findTopic(ctx, topicID)
	if err != nil {
		return err
	}
	if !t.HasParticipant(uid) {
		return messageEntity.ErrNotParticipant
	}
	_, err = s.TopicRepository.MarkRead(ctx, t.ID, uid, s.now())
	return err
}

// DeleteTopics deletes the listed threads the user takes part in and returns
// how many were deleted. Malformed, unknown and foreign ids are skipped.
func (s *MessageService) DeleteTopics(ctx context.Context, userID string, topicIDs []string) (int, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return 0, userEntity.ErrUserNotFound
	}

	deleted := 0
	seen := make(map[uuid.UUID]struct{}, len(topicIDs))
	for _, raw := range topicIDs {
		tid, err := uuid.FromString(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if _, dup := seen[tid]; dup {
			continue
		}
		seen[tid] = struct{}{}

		t, err := s.TopicRepository.FindByID(ctx, tid)
		if errors.Is(err, messageEntity.ErrTopicNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		if !t.HasParticipant(uid) {
			continue
		}

		err = s.TopicRepository.Delete(ctx, tid)
		if errors.Is(err, messageEntity.ErrTopicNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}

	if deleted > 0 {
		config.Logger.Info("Deleted topics", zap.String("userID", userID), zap.Int("count", deleted))
	}
	return deleted, nil
}

func (s *MessageService) findTopic(ctx context.Context, topicID string) (*messageEntity.Topic, error) {
	tid, err := uuid.FromString(topicID)
	if err != nil {
		return nil, messageEntity.ErrTopicNotFound
	}
	return s.TopicRepository.FindByID(ctx, tid)
}
