package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	chatDTO "github.com/johnquangdev/joyability/internal/adapter/dto/chat"
	"github.com/johnquangdev/joyability/internal/adapter/presenter"
	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/usecase/chat"
)

// ChatService is what the chat handler needs
type ChatService interface {
	Create(uid string) chat.Conversation
	Send(ctx context.Context, uid, id, text string) (entities.ChatMessage, error)
	Get(uid, id string) (chat.Conversation, error)
	Delete(uid, id string) error
}

// Chat handles chatbot conversations
type Chat struct {
	service ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service ChatService, logger *zap.Logger) *Chat {
	return &Chat{service: service, logger: logger}
}

// Create starts a conversation
// @Summary      New conversation
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  chat.ConversationResponse
// @Router       /chat/conversations [post]
func (h *Chat) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	conv := h.service.Create(id.UID)
	return handleSuccessStatus(h.logger, c, http.StatusCreated, presenter.ToConversationResponse(conv))
}

// Send posts a user message and returns the model's reply
// @Summary      Send a chat message
// @Description  On failure the conversation records the fallback reply and the error is returned
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string            true  "Conversation ID"
// @Param        request  body      chat.SendRequest  true  "Message"
// @Success      200      {object}  chat.SendResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /chat/conversations/{id}/messages [post]
func (h *Chat) Send(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req chatDTO.SendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	reply, err := h.service.Send(c.Request().Context(), id.UID, c.Param("id"), req.Text)
	if err != nil {
		return handleToolError(h.logger, c, presenter.ToolChat, err)
	}
	return HandleSuccess(h.logger, c, chatDTO.SendResponse{Reply: presenter.ToMessageDTO(reply)})
}

// Get returns the conversation transcript
// @Summary      Get a conversation
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  chat.ConversationResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /chat/conversations/{id} [get]
func (h *Chat) Get(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	conv, err := h.service.Get(id.UID, c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToConversationResponse(conv))
}

// Delete discards a conversation
// @Summary      Delete a conversation
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  common.MessageResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /chat/conversations/{id} [delete]
func (h *Chat) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.Delete(id.UID, c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"message": "Conversation deleted"})
}
