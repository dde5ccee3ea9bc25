package serverutils

import (
	"errors"

	"rams-generator-be/internal/assembler"
	"rams-generator-be/internal/pkg/logger"
	"rams-generator-be/internal/service"
	"rams-generator-be/internal/template"
	"rams-generator-be/pkg/document"
	"rams-generator-be/pkg/llm"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts domain errors into the structured error
// envelope. Components are identified by their sentinel; unknown errors
// become opaque 500s.
func ErrorHandlerMiddleware(sysLogger logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := statusCodeFor(err)
		if code >= fiber.StatusInternalServerError {
			sysLogger.Error("http", "Request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		} else {
			sysLogger.Warn("http", "Request rejected", map[string]interface{}{
				"path":  ctx.Path(),
				"code":  code,
				"error": err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

func statusCodeFor(err error) int {
	var validationErrs validator.ValidationErrors
	var malformed *assembler.ErrMalformedSection
	var markerNotFound *document.ErrMarkerNotFound
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, service.ErrInvalidAnswerCount):
		return fiber.StatusBadRequest

	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrDocumentNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, service.ErrSessionAlreadyComplete),
		errors.Is(err, service.ErrSessionNotComplete),
		errors.Is(err, service.ErrSessionConsumed):
		return fiber.StatusConflict

	case errors.Is(err, service.ErrQuestionGeneration),
		errors.Is(err, llm.ErrGeneration):
		return fiber.StatusBadGateway

	// Assembly-wrapped errors come from model output, not the caller; a bare
	// malformed section means the caller submitted unusable content.
	case errors.Is(err, template.ErrTemplateLoad),
		errors.As(err, &markerNotFound),
		errors.Is(err, service.ErrAssembly):
		return fiber.StatusInternalServerError

	case errors.As(err, &malformed):
		return fiber.StatusBadRequest

	case errors.As(err, &fiberErr):
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
