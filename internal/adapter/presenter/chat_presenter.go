package presenter

import (
	dto "github.com/johnquangdev/joyability/internal/adapter/dto/chat"
	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/usecase/chat"
)

// ToMessageDTO converts a chat message
func ToMessageDTO(m entities.ChatMessage) dto.Message {
	return dto.Message{Role: string(m.Role), Text: m.Text, Timestamp: m.Timestamp}
}

// ToConversationResponse converts a conversation snapshot
func ToConversationResponse(c chat.Conversation) *dto.ConversationResponse {
	messages := make([]dto.Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, ToMessageDTO(m))
	}
	return &dto.ConversationResponse{ID: c.ID, CreatedAt: c.CreatedAt, Messages: messages}
}
