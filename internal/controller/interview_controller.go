package controller

import (
	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/pkg/serverutils"
	"rams-generator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Answer(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
}

type interviewController struct {
	service service.IInterviewService
}

func NewInterviewController(service service.IInterviewService) IInterviewController {
	return &interviewController{service: service}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Post("/start", c.Start)
	h.Post("/:id/answer", c.Answer)
	h.Post("/:id/generate", c.Generate)
}

func (c *interviewController) Start(ctx *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Interview started", res))
}

func (c *interviewController) Answer(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	var req dto.AnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Answer(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer recorded", res))
}

func (c *interviewController) Generate(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	data, err := c.service.Generate(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return sendDocument(ctx, data)
}
