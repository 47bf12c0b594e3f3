package handlers

import (
	"errors"

	"proxym-fin/internal/dto"
	"proxym-fin/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Ask godoc
// @Summary Ask the financial assistant
// @Tags chat
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ChatRequest true "Message with user context"
// @Success 200 {object} dto.ChatResponse
// @Router /chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.chatService.Ask(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrChatUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("Chat failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(resp)
}
