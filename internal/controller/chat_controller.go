package controller

import (
	"insightsmith-be/internal/dto"
	"insightsmith-be/internal/pkg/serverutils"
	"insightsmith-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
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
	h := r.Group("/chat/v1")
	h.Post("", c.Chat)
	h.Get("health", c.Health)
	h.Post("session", c.CreateSession)
	h.Get("session/:id", c.ShowSession)
	h.Delete("session/:id", c.DeleteSession)
}

// Chat answers with the chat envelope directly; the service folds every
// failure into it, so this handler never returns an error for chat turns.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.chatService.SendChat(ctx.Context(), &req)
	if !res.Success {
		return ctx.Status(fiber.StatusBadRequest).JSON(res)
	}
	return ctx.JSON(res)
}

func (c *chatController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.chatService.Health(ctx.Context()))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	// An empty body is fine; the session starts in guide mode.
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.NewApiError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) ShowSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.chatService.DeleteSession(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", struct{}{}))
}
