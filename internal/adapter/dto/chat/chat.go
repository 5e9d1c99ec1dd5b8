package chat

import "time"

// Message is one chat turn
type Message struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationResponse is a conversation transcript
type ConversationResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// SendRequest is a new user message
type SendRequest struct {
	Text string `json:"text" validate:"notblank"`
}

// SendResponse carries the model's reply
type SendResponse struct {
	Reply Message `json:"reply"`
}
