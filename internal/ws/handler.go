// Package ws provides the websocket subscription transport. A client opens
// one connection, registers any number of wallet identifiers on it, and
// receives every event published to those wallets until it disconnects.
package ws

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/wallet-notify/wallet_notify/internal/notify"
	"github.com/wallet-notify/wallet_notify/internal/transfer"
)

// Inbound message types, mirroring the client protocol.
const (
	msgRegister           = "register"
	msgSendTransaction    = "send_transaction"
	msgConfirmTransaction = "confirm_transaction"
)

type inboundMessage struct {
	Type          string `json:"type"`
	WalletID      string `json:"wallet_id,omitempty"`
	Sender        string `json:"sender,omitempty"`
	Receiver      string `json:"receiver,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// Handler bridges websocket sessions to the dispatcher and processor.
type Handler struct {
	dispatcher *notify.Dispatcher
	processor  *transfer.Processor
	logger     *slog.Logger
	sendBuffer int
}

// NewHandler constructs the websocket handler. sendBuffer sizes each
// connection's outbound event channel.
func NewHandler(dispatcher *notify.Dispatcher, processor *transfer.Processor, sendBuffer int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{dispatcher: dispatcher, processor: processor, logger: logger, sendBuffer: sendBuffer}
}

// Upgrade is the fiber middleware guarding the websocket route.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the fiber handler serving upgraded connections.
func (h *Handler) Handler() fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		h.serve(ws)
	})
}

func (h *Handler) serve(ws *websocket.Conn) {
	c := newConn(h.sendBuffer)
	h.logger.Info("websocket connected", "conn_id", c.ID())

	defer func() {
		h.dispatcher.Disconnect(c)
		c.close()
		h.logger.Info("websocket disconnected", "conn_id", c.ID())
	}()

	go h.writePump(ws, c)

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}
		h.handle(c, msg)
	}
}

// writePump is the sole writer on the websocket connection; it serializes
// event delivery and exits when the session or the pump's write fails.
func (h *Handler) writePump(ws *websocket.Conn, c *conn) {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.out:
			if err := ws.WriteJSON(ev); err != nil {
				c.close()
				return
			}
		}
	}
}

func (h *Handler) handle(c *conn, msg inboundMessage) {
	switch msg.Type {
	case msgRegister:
		if msg.WalletID == "" {
			h.sendError(c, "wallet_id is required")
			return
		}
		h.dispatcher.Register(c, msg.WalletID)

	case msgSendTransaction:
		// Rejections already surface as an alert to the sender's channel.
		_, _ = h.processor.Process(context.Background(), transfer.Request{
			Sender:   msg.Sender,
			Receiver: msg.Receiver,
			Amount:   msg.Amount,
		})

	case msgConfirmTransaction:
		h.processor.Confirm(context.Background(), msg.TransactionID)
		_ = c.Send(notify.Event{
			Kind:    notify.KindConfirmation,
			Message: "Transaction confirmation acknowledged",
		})

	default:
		h.sendError(c, "unknown message type: "+msg.Type)
	}
}

func (h *Handler) sendError(c *conn, message string) {
	if err := c.Send(notify.Event{Kind: notify.KindAlert, Message: message}); err != nil {
		h.logger.Debug("dropped protocol error", "conn_id", c.ID(), "error", err)
	}
}
