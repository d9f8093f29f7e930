package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wallet-notify/wallet_notify/internal/ws"
)

// RegisterWebsocketRoute wires the websocket subscription endpoint.
func RegisterWebsocketRoute(app *fiber.App, h *ws.Handler) {
	app.Use("/ws", ws.Upgrade)
	app.Get("/ws", h.Handler())
}
