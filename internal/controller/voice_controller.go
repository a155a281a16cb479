package controller

import (
	"insightsmith-be/internal/dto"
	"insightsmith-be/internal/pkg/serverutils"
	"insightsmith-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
	Speak(ctx *fiber.Ctx) error
	VoiceChat(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{
		voiceService: voiceService,
	}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice/v1")
	h.Post("transcribe", c.Transcribe)
	h.Post("speak", c.Speak)
	h.Post("chat", c.VoiceChat)
}

func (c *voiceController) Transcribe(ctx *fiber.Ctx) error {
	var req dto.TranscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.voiceService.Transcribe(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success transcribe audio", res))
}

func (c *voiceController) Speak(ctx *fiber.Ctx) error {
	var req dto.SpeakRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.voiceService.Speak(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success synthesize speech", res))
}

// VoiceChat mirrors the chat envelope: failures come back inside the
// response, not as transport errors.
func (c *voiceController) VoiceChat(ctx *fiber.Ctx) error {
	var req dto.VoiceChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.VoiceChatResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.voiceService.VoiceChat(ctx.Context(), &req)
	if !res.Success {
		return ctx.Status(fiber.StatusInternalServerError).JSON(res)
	}
	return ctx.JSON(res)
}
