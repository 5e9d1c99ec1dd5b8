package entities

import "time"

// ChatRole is who authored a chat message
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatFallbackReply is appended when the model call fails
const ChatFallbackReply = "I encountered an error. Please try again."
