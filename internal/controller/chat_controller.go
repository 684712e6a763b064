package controller

import (
	"github.com/gofiber/fiber/v2"

	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/pkg/serverutils"
	"film-assistant-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Message: "invalid request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	reply, err := c.chatService.Respond(ctx.Context(), &req)
	if err != nil {
		return err
	}

	// The reply is plain text, matching what chat frontends stream into the
	// transcript directly.
	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return ctx.SendString(reply)
}
