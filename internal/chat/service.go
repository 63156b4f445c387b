// Package chat owns the client-side conversation state: the current session
// and its message list, exposed as observable cells. The server is the
// source of truth; every mutation here mirrors a completed server response.
package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dyike/widgetchat/internal/api"
	"github.com/dyike/widgetchat/internal/models"
)

// Service wraps the chat API and keeps the current session plus its message
// list. State is process-local and empty at startup; nothing persists
// across runs.
type Service struct {
	client *api.Client
	userID string
	logger *zap.Logger

	session  *Cell[*models.ChatSession]
	messages *Cell[[]models.Message]
}

func NewService(client *api.Client, userID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Service{
		client:   client,
		userID:   userID,
		logger:   logger,
		session:  NewCell[*models.ChatSession](),
		messages: NewCell[[]models.Message](),
	}
	svc.session.Set(nil)
	svc.messages.Set(nil)
	return svc
}

// Session is the observable current session; nil means no session selected.
func (s *Service) Session() *Cell[*models.ChatSession] { return s.session }

// Messages is the observable message list of the current session, in server
// return order. The client never reorders it.
func (s *Service) Messages() *Cell[[]models.Message] { return s.messages }

// UserID returns the user this service acts for.
func (s *Service) UserID() string { return s.userID }

// CurrentSession returns the selected session, or nil.
func (s *Service) CurrentSession() *models.ChatSession {
	session, _ := s.session.Get()
	return session
}

// ListSessions fetches the user's sessions. Fetch-only: no local merge.
func (s *Service) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	return s.client.ListSessions(ctx, s.userID)
}

// CreateSession creates a session and selects it.
func (s *Service) CreateSession(ctx context.Context, title string) (*models.ChatSession, error) {
	session, err := s.client.CreateSession(ctx, s.userID, title)
	if err != nil {
		return nil, err
	}
	s.logger.Info("session created", zap.Int("session_id", session.ID))
	s.session.Set(session)
	s.messages.Set(nil)
	return session, nil
}

// SelectSession makes session current. Non-nil: its messages are fetched
// fresh and replace the local list wholesale. Nil: clears the list and the
// current-session reference.
func (s *Service) SelectSession(ctx context.Context, session *models.ChatSession) error {
	if session == nil {
		s.session.Set(nil)
		s.messages.Set(nil)
		return nil
	}

	messages, err := s.client.GetSessionMessages(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("select session %d: %w", session.ID, err)
	}
	s.session.Set(session)
	s.messages.Set(messages)
	return nil
}

// SendMessage posts one chat turn against the current session (or none, in
// which case the server creates one). On success the returned user and
// assistant messages are appended, in that order, and the current-session
// reference adopts the returned session id. On failure nothing changes
// locally, so the caller can let the user resubmit the same text.
func (s *Service) SendMessage(ctx context.Context, content string) (*models.ChatResponse, error) {
	req := models.ChatRequest{
		Message: content,
		UserID:  s.userID,
	}
	if current := s.CurrentSession(); current != nil {
		req.SessionID = current.ID
	}

	resp, err := s.client.SendMessage(ctx, req)
	if err != nil {
		s.logger.Warn("send message failed", zap.Error(err))
		return nil, err
	}

	s.adoptSession(ctx, resp.SessionID)

	current, _ := s.messages.Get()
	updated := make([]models.Message, 0, len(current)+2)
	updated = append(updated, current...)
	updated = append(updated, resp.UserMessage, resp.AssistantMessage)
	s.messages.Set(updated)

	return resp, nil
}

// adoptSession points the current-session cell at sessionID, fetching the
// record when the id is new (the server may have just created it).
func (s *Service) adoptSession(ctx context.Context, sessionID int) {
	if current := s.CurrentSession(); current != nil && current.ID == sessionID {
		return
	}
	session, err := s.client.GetSession(ctx, sessionID)
	if err != nil {
		// The turn itself succeeded; fall back to a minimal record rather
		// than failing the send.
		s.logger.Warn("fetch adopted session failed", zap.Int("session_id", sessionID), zap.Error(err))
		session = &models.ChatSession{ID: sessionID, UserID: s.userID}
	}
	s.session.Set(session)
}

// RefreshMessages re-fetches the current session's messages and replaces
// the list wholesale. No-op without a session.
func (s *Service) RefreshMessages(ctx context.Context) error {
	current := s.CurrentSession()
	if current == nil {
		return nil
	}
	messages, err := s.client.GetSessionMessages(ctx, current.ID)
	if err != nil {
		return err
	}
	s.messages.Set(messages)
	return nil
}

// DeleteSession removes the session from the server. Local state is left
// untouched (no optimistic removal); use DeleteAndReselect to keep the
// current-session invariant.
func (s *Service) DeleteSession(ctx context.Context, sessionID int) error {
	return s.client.DeleteSession(ctx, sessionID)
}

// DeleteAndReselect deletes sessionID and, if it was current, selects the
// most recently updated remaining session or clears the selection. The
// current session never ends up pointing at a deleted id.
func (s *Service) DeleteAndReselect(ctx context.Context, sessionID int) error {
	if err := s.client.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.Int("session_id", sessionID))

	current := s.CurrentSession()
	if current == nil || current.ID != sessionID {
		return nil
	}

	remaining, err := s.client.ListSessions(ctx, s.userID)
	if err != nil || len(remaining) == 0 {
		// Deleted session must not stay selected even if the re-list failed.
		return s.SelectSession(ctx, nil)
	}
	if err := s.SelectSession(ctx, &remaining[0]); err != nil {
		return s.SelectSession(ctx, nil)
	}
	return nil
}
