package controller

import (
	"bufio"
	"errors"
	"io"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/dto"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/pkg/serverutils"
	"documentor-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const sourcesHeader = "X-Source-Chunks"

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	log         logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		log:         log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.Query)
}

func (c *chatController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	answer, err := c.chatService.Answer(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Set(sourcesHeader, answer.SourcesHeader)
	ctx.Set("Access-Control-Expose-Headers", sourcesHeader)

	stream := answer.Stream
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer stream.Close()
		for {
			chunk, err := stream.Recv()
			if chunk != "" {
				if _, werr := w.WriteString(chunk); werr != nil {
					return
				}
				if werr := w.Flush(); werr != nil {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					c.log.Error("CHAT", "Answer stream aborted", map[string]interface{}{
						"error": err.Error(),
					})
				}
				return
			}
		}
	}))

	return nil
}
