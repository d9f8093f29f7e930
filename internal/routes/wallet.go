package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wallet-notify/wallet_notify/internal/wallet"
)

// RegisterWalletRoutes wires wallet-related endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Post("/wallets/:walletId/register", h.Register)
	r.Get("/wallets/:walletId/balance", h.Balance)
}
