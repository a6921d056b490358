package controller

import (
	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/dto"
	"documentor-ai-be/internal/pkg/serverutils"
	"documentor-ai-be/internal/service"
	"documentor-ai-be/pkg/report"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	ExportPDF(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	r.Post("/export/pdf", c.ExportPDF)
}

func (c *exportController) ExportPDF(ctx *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	path, err := c.exportService.ExportPDF(ctx.Context(), req.ChatHistory)
	if err != nil {
		return err
	}

	file, size, err := report.OpenTransient(path)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="DocuMentor_Summary.pdf"`)
	// The transient file removes itself once fasthttp closes it after the
	// response body has been fully written.
	ctx.Context().Response.SetBodyStream(file, size)

	return nil
}
