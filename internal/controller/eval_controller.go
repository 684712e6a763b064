package controller

import (
	"github.com/gofiber/fiber/v2"

	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/pkg/serverutils"
	"film-assistant-be/internal/service"
)

// evalController serves the endpoints external benchmark jobs use to probe
// retrieval quality without going through the chat surface.
type IEvalController interface {
	RegisterRoutes(r fiber.Router)
	Samples(ctx *fiber.Ctx) error
	Retriever(ctx *fiber.Ctx) error
}

type evalController struct {
	chunkService service.IChunkService
}

func NewEvalController(chunkService service.IChunkService) IEvalController {
	return &evalController{
		chunkService: chunkService,
	}
}

func (c *evalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rag_level")
	h.Post("samples", c.Samples)
	h.Post("retriever", c.Retriever)
}

func (c *evalController) Samples(ctx *fiber.Ctx) error {
	var req dto.SamplesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Message: "invalid request body"}
	}

	res, err := c.chunkService.Samples(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *evalController) Retriever(ctx *fiber.Ctx) error {
	var req dto.RetrieverRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Message: "invalid request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	candidates, err := c.chunkService.Retrieve(ctx.Context(), req.Question, req.TopK)
	if err != nil {
		return err
	}

	results := make([]dto.RetrieverResult, len(candidates))
	for i, cand := range candidates {
		results[i] = dto.RetrieverResult{
			Id:          cand.ChunkID,
			Content:     cand.Content,
			Distance:    cand.Distance,
			RerankScore: cand.RerankScore,
		}
	}
	return ctx.JSON(dto.RetrieverResponse{Results: results})
}
