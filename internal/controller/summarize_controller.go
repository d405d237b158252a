package controller

import (
	"errors"

	"notelite-be/internal/dto"
	"notelite-be/internal/pkg/serverutils"
	"notelite-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const summarizeInternalError = "Something went wrong while summarizing."

type ISummarizeController interface {
	RegisterRoutes(r fiber.Router, authGuard fiber.Handler)
	Summarize(ctx *fiber.Ctx) error
}

type summarizeController struct {
	summarizeService service.ISummarizeService
}

func NewSummarizeController(summarizeService service.ISummarizeService) ISummarizeController {
	return &summarizeController{
		summarizeService: summarizeService,
	}
}

func (c *summarizeController) RegisterRoutes(r fiber.Router, authGuard fiber.Handler) {
	r.Post("/summarize", authGuard, c.Summarize)
}

// Summarize keeps the fixed wire contract of the endpoint: {summary} on
// success, {error} with a fixed message otherwise. It bypasses the
// envelope the other controllers use.
func (c *summarizeController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(dto.SummarizeErrorResponse{Error: summarizeInternalError})
	}

	res, err := c.summarizeService.Summarize(ctx.Context(), &req)
	if err != nil {
		var appErr *serverutils.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(dto.SummarizeErrorResponse{Error: appErr.Message})
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(dto.SummarizeErrorResponse{Error: summarizeInternalError})
	}

	return ctx.JSON(res)
}
