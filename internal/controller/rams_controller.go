package controller

import (
	"rams-generator-be/internal/assembler"
	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/pkg/serverutils"
	"rams-generator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFilename    = "completed_rams.docx"
)

type IRamsController interface {
	RegisterRoutes(r fiber.Router)
	GenerateFull(ctx *fiber.Ctx) error
	ApplyRiskAssessment(ctx *fiber.Ctx) error
	ApplySequence(ctx *fiber.Ctx) error
	ApplyMethodStatement(ctx *fiber.Ctx) error
}

type ramsController struct {
	service service.IRamsService
}

func NewRamsController(service service.IRamsService) IRamsController {
	return &ramsController{service: service}
}

func (c *ramsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rams/v1")
	h.Post("/generate", c.GenerateFull)
	h.Post("/section/risk-assessment", c.ApplyRiskAssessment)
	h.Post("/section/sequence", c.ApplySequence)
	h.Post("/section/method-statement", c.ApplyMethodStatement)
}

// GenerateFull accepts exactly 20 ordered answers and returns the completed
// document in one shot.
func (c *ramsController) GenerateFull(ctx *fiber.Ctx) error {
	var req dto.GenerateFullRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	data, err := c.service.AssembleFull(ctx.Context(), req.Answers, service.SourceSingleShot, "")
	if err != nil {
		return err
	}

	return sendDocument(ctx, data)
}

func (c *ramsController) ApplyRiskAssessment(ctx *fiber.Ctx) error {
	return c.applySection(ctx, assembler.SectionRiskAssessment)
}

func (c *ramsController) ApplySequence(ctx *fiber.Ctx) error {
	return c.applySection(ctx, assembler.SectionSequence)
}

func (c *ramsController) ApplyMethodStatement(ctx *fiber.Ctx) error {
	return c.applySection(ctx, assembler.SectionMethodStatement)
}

func (c *ramsController) applySection(ctx *fiber.Ctx, sectionType assembler.SectionType) error {
	var req dto.ApplySectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	documentID, data, err := c.service.ApplySection(ctx.Context(), sectionType, &req)
	if err != nil {
		return err
	}

	ctx.Set("X-Document-Id", documentID)
	return sendDocument(ctx, data)
}

func sendDocument(ctx *fiber.Ctx, data []byte) error {
	ctx.Set(fiber.HeaderContentType, docxContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename=`+docxFilename)
	return ctx.Send(data)
}
