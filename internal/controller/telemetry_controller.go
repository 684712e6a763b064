package controller

import (
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"

	"film-assistant-be/internal/pkg/serverutils"
	"film-assistant-be/internal/service"
	ws "film-assistant-be/internal/websocket"
)

type ITelemetryController interface {
	RegisterRoutes(r fiber.Router)
	RegisterWebsocket(app *fiber.App)
	Recent(ctx *fiber.Ctx) error
}

type telemetryController struct {
	telemetryService service.ITelemetryService
	hub              *ws.Hub
}

func NewTelemetryController(telemetryService service.ITelemetryService, hub *ws.Hub) ITelemetryController {
	return &telemetryController{
		telemetryService: telemetryService,
		hub:              hub,
	}
}

func (c *telemetryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/telemetry")
	h.Get("recent", c.Recent)
}

func (c *telemetryController) RegisterWebsocket(app *fiber.App) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/telemetry", fiberws.New(func(conn *fiberws.Conn) {
		ws.ServeWs(c.hub, conn)
	}))
}

func (c *telemetryController) Recent(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	events, err := c.telemetryService.Recent(ctx.Context(), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent telemetry", events))
}
