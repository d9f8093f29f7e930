package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wallet-notify/wallet_notify/internal/ledger"
	"github.com/wallet-notify/wallet_notify/internal/notify"
)

// Handler exposes wallet registration and balance endpoints. Wallet state is
// ledger state: registration seeds the ledger entry through the dispatcher,
// and balance reads come straight from the store.
type Handler struct {
	dispatcher *notify.Dispatcher
	store      *ledger.Store
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(dispatcher *notify.Dispatcher, store *ledger.Store) *Handler {
	return &Handler{dispatcher: dispatcher, store: store}
}

// Register registers a wallet identifier. Idempotent: the first call seeds
// the demo balance and emits the one-time seed event; later calls change
// nothing.
func (h *Handler) Register(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	if walletID == "" {
		return fiber.NewError(http.StatusBadRequest, "wallet id is required")
	}

	seeded := h.dispatcher.Register(nil, walletID)

	balance, err := h.store.Balance(walletID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	status := http.StatusOK
	if seeded {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"wallet_id": walletID,
		"seeded":    seeded,
		"balance":   balance,
	})
}

// Balance returns the wallet balance. Lock-free display read; debit
// decisions never go through this path.
func (h *Handler) Balance(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	balance, err := h.store.Balance(walletID)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownWallet) {
			return fiber.NewError(http.StatusNotFound, "unknown wallet")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet_id": walletID,
		"balance":   balance,
	})
}
