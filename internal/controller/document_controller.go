package controller

import (
	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/process", c.Process)
}

func (c *documentController) Process(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.NewValidation("A document file is required.")
	}

	res, err := c.documentService.Process(ctx.Context(), fileHeader)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
