// FILE: internal/controller/search_controller.go
package controller

import (
	"event-discovery-be/internal/dto"
	"event-discovery-be/internal/pkg/serverutils"
	"event-discovery-be/internal/repository/contract"
	"event-discovery-be/internal/service"
	"event-discovery-be/pkg/embedding"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type searchController struct {
	retrievalService service.IRetrievalService
	embeddingClient  *embedding.Client
	eventRepository  contract.EventRepository
}

func NewSearchController(retrievalService service.IRetrievalService, embeddingClient *embedding.Client, eventRepository contract.EventRepository) ISearchController {
	return &searchController{
		retrievalService: retrievalService,
		embeddingClient:  embeddingClient,
		eventRepository:  eventRepository,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Post("", c.Search)
	h.Get("health", c.Health)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.retrievalService.Retrieve(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search events", dto.ToSearchResponse(result)))
}

func (c *searchController) Health(ctx *fiber.Ctx) error {
	status := c.embeddingClient.HealthCheck(ctx.Context())

	database := "up"
	if err := c.eventRepository.Ping(ctx.Context()); err != nil {
		database = "down: " + err.Error()
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check search health", fiber.Map{
		"embedding": status,
		"database":  database,
	}))
}
