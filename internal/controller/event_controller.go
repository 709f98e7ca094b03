// FILE: internal/controller/event_controller.go
package controller

import (
	"event-discovery-be/internal/dto"
	"event-discovery-be/internal/pkg/serverutils"
	"event-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEventController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Backfill(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type eventController struct {
	eventService service.IEventService
}

func NewEventController(eventService service.IEventService) IEventController {
	return &eventController{
		eventService: eventService,
	}
}

func (c *eventController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/event/v1")
	h.Post("ingest", c.Ingest)
	h.Post("backfill-embeddings", c.Backfill)
	h.Get(":id", c.Show)
}

func (c *eventController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestEventsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.eventService.Ingest(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest events", res))
}

func (c *eventController) Backfill(ctx *fiber.Ctx) error {
	batchSize := ctx.QueryInt("batch_size", 100)

	res, err := c.eventService.BackfillEmbeddings(ctx.Context(), batchSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue embedding backfill", res))
}

func (c *eventController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	event, err := c.eventService.GetEvent(ctx.Context(), id)
	if err != nil {
		return err
	}
	if event == nil {
		return fiber.NewError(fiber.StatusNotFound, "event not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show event", event))
}
