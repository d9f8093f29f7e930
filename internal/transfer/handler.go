package transfer

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wallet-notify/wallet_notify/internal/ledger"
)

// Handler exposes transfer endpoints.
type Handler struct {
	processor *Processor
}

// NewHandler constructs a transfer handler.
func NewHandler(processor *Processor) *Handler {
	return &Handler{processor: processor}
}

type sendRequest struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   int64  `json:"amount"`
}

// Send processes a wallet-to-wallet transfer.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.processor.Process(c.UserContext(), Request{
		Sender:   req.Sender,
		Receiver: req.Receiver,
		Amount:   req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusUnprocessableEntity, "insufficient funds")
		case errors.Is(err, ErrUnknownSender):
			return fiber.NewError(http.StatusNotFound, "unknown sender wallet")
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrMissingParty), errors.Is(err, ErrSelfTransfer):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction_id":   outcome.TransactionID,
		"amount":           outcome.Amount,
		"fee":              outcome.Fee,
		"net_debited":      outcome.NetDebited,
		"net_credited":     outcome.NetCredited,
		"sender_balance":   outcome.SenderBalance,
		"receiver_balance": outcome.ReceiverBalance,
		"completed_at":     outcome.CompletedAt,
	})
}

// Confirm acknowledges a transaction confirmation. No settlement effect.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	if transactionID == "" {
		return fiber.NewError(http.StatusBadRequest, "transaction id is required")
	}

	h.processor.Confirm(c.UserContext(), transactionID)

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"transaction_id": transactionID,
		"status":         "acknowledged",
	})
}
