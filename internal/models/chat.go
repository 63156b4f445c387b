package models

import "time"

// Message roles as served by the backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession is a user-scoped conversation thread. The server assigns the
// id and owns the record; the client only sets the title at creation time.
type ChatSession struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single chat turn entry. Messages are immutable once received;
// assistant messages may carry rendered widgets.
type Message struct {
	ID        int       `json:"id"`
	SessionID int       `json:"session_id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Widgets   []Widget  `json:"widgets,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionCreateRequest is the body of POST /chat/sessions.
type SessionCreateRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
}

// ChatRequest is the body of POST /chat/message. SessionID of zero means
// "no session yet": the server creates one and returns its id.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID int    `json:"session_id,omitempty"`
	UserID    string `json:"user_id"`
}

// ChatResponse is one completed chat turn: the echoed user message and the
// assistant reply, always in that pair.
type ChatResponse struct {
	UserMessage      Message  `json:"user_message"`
	AssistantMessage Message  `json:"assistant_message"`
	SessionID        int      `json:"session_id"`
	Widgets          []Widget `json:"widgets,omitempty"`
}
