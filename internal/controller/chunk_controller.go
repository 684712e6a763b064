package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/pkg/serverutils"
	"film-assistant-be/internal/service"
)

type IChunkController interface {
	RegisterRoutes(r fiber.Router)
	UploadChunks(ctx *fiber.Ctx) error
	UploadDocs(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chunkController struct {
	chunkService service.IChunkService
}

func NewChunkController(chunkService service.IChunkService) IChunkController {
	return &chunkController{
		chunkService: chunkService,
	}
}

func (c *chunkController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload-chunks", serverutils.JwtMiddleware, c.UploadChunks)
	r.Post("/upload-docs", serverutils.JwtMiddleware, c.UploadDocs)

	h := r.Group("/chunk/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Delete(":id", c.Delete)
}

func (c *chunkController) UploadChunks(ctx *fiber.Ctx) error {
	var req dto.UploadChunksRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Message: "invalid request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chunkService.UploadChunks(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chunks uploaded", res))
}

func (c *chunkController) UploadDocs(ctx *fiber.Ctx) error {
	var req dto.UploadDocsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Message: "invalid request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chunkService.UploadDocs(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Documents queued", res))
}

func (c *chunkController) Delete(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return &serverutils.ValidationError{Message: "chunk id must be an integer"}
	}

	if err := c.chunkService.Delete(ctx.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Chunk not found"))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chunk deleted", dto.DeleteChunkResponse{Id: id}))
}
