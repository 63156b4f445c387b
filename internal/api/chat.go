package api

import (
	"context"
	"fmt"

	"github.com/dyike/widgetchat/internal/models"
)

// CreateSession creates a new chat session for the user.
func (c *Client) CreateSession(ctx context.Context, userID, title string) (*models.ChatSession, error) {
	var session models.ChatSession
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.SessionCreateRequest{UserID: userID, Title: title}).
		SetResult(&session).
		Post("/chat/sessions")
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions fetches all sessions belonging to userID, most recently
// updated first (server ordering).
func (c *Client) ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", userID).
		SetResult(&sessions).
		Get("/chat/sessions")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches a single session by id.
func (c *Client) GetSession(ctx context.Context, sessionID int) (*models.ChatSession, error) {
	var session models.ChatSession
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&session).
		Get(fmt.Sprintf("/chat/sessions/%d", sessionID))
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", sessionID, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionMessages fetches every message of a session in server order
// (chronological).
func (c *Client) GetSessionMessages(ctx context.Context, sessionID int) ([]models.Message, error) {
	var messages []models.Message
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&messages).
		Get(fmt.Sprintf("/chat/sessions/%d/messages", sessionID))
	if err != nil {
		return nil, fmt.Errorf("get messages for session %d: %w", sessionID, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts one chat turn. A zero sessionID lets the server create
// the session; the returned response carries the authoritative session id.
func (c *Client) SendMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var chatResp models.ChatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&chatResp).
		Post("/chat/message")
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &chatResp, nil
}

// DeleteSession removes a session and all its messages from the server.
func (c *Client) DeleteSession(ctx context.Context, sessionID int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/chat/sessions/%d", sessionID))
	if err != nil {
		return fmt.Errorf("delete session %d: %w", sessionID, err)
	}
	return checkResponse(resp)
}
