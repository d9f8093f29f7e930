package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wallet-notify/wallet_notify/internal/transfer"
)

// RegisterTransferRoutes wires transfer endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler, rateLimit fiber.Handler) {
	r.Post("/transfers", rateLimit, h.Send)
	r.Post("/transfers/:transactionId/confirm", h.Confirm)
}
