package controller

import (
	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/entity"
	"rams-generator-be/internal/pkg/serverutils"
	"rams-generator-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IArchiveController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Detail(ctx *fiber.Ctx) error
}

// archiveController exposes read access to the generated-document archive.
// Only wired when a database is configured.
type archiveController struct {
	recordRepo contract.IDocumentRecordRepository
}

func NewArchiveController(recordRepo contract.IDocumentRecordRepository) IArchiveController {
	return &archiveController{recordRepo: recordRepo}
}

func (c *archiveController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rams/v1/archive")
	h.Get("/", c.List)
	h.Get("/:id", c.Detail)
}

func (c *archiveController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	records, err := c.recordRepo.FindAll(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}
	total, err := c.recordRepo.Count(ctx.Context())
	if err != nil {
		return err
	}

	res := &dto.ArchiveListResponse{
		Total:   total,
		Records: make([]*dto.ArchiveRecordResponse, 0, len(records)),
	}
	for _, record := range records {
		res.Records = append(res.Records, toArchiveRecordResponse(record))
	}
	return ctx.JSON(serverutils.SuccessResponse("Archive records", res))
}

func (c *archiveController) Detail(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid archive record id")
	}

	record, err := c.recordRepo.FindById(ctx.Context(), id)
	if err != nil {
		return err
	}
	if record == nil {
		return fiber.NewError(fiber.StatusNotFound, "archive record not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Archive record", toArchiveRecordResponse(record)))
}

func toArchiveRecordResponse(record *entity.DocumentRecord) *dto.ArchiveRecordResponse {
	return &dto.ArchiveRecordResponse{
		Id:              record.Id.String(),
		Source:          record.Source,
		TaskDescription: record.TaskDescription,
		SizeBytes:       record.SizeBytes,
		CreatedAt:       record.CreatedAt,
	}
}
