package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-notify/wallet_notify/internal/fee"
	"github.com/wallet-notify/wallet_notify/internal/ledger"
	"github.com/wallet-notify/wallet_notify/internal/notify"
)

// Outcome describes an applied transfer. Amount is the requested amount;
// NetDebited and NetCredited make the fee policy explicit on every result.
type Outcome struct {
	TransactionID   string
	Amount          int64
	Fee             int64
	NetDebited      int64
	NetCredited     int64
	SenderBalance   int64
	ReceiverBalance int64
	CompletedAt     time.Time
}

// Processor is the only writer of the ledger. It orchestrates validation,
// fee computation, the atomic balance mutation, and event fan-out to both
// parties.
type Processor struct {
	store      *ledger.Store
	fees       fee.Policy
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
}

// NewProcessor constructs a transfer processor.
func NewProcessor(store *ledger.Store, fees fee.Policy, dispatcher *notify.Dispatcher, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{store: store, fees: fees, dispatcher: dispatcher, logger: logger}
}

// Process validates and applies the transfer. On rejection a single alert is
// emitted to the sender and no balance changes. On success the sender is
// debited the requested amount, the receiver is credited amount minus fee,
// and each party receives one transaction event and one balance_update.
func (p *Processor) Process(ctx context.Context, req Request) (Outcome, error) {
	if err := Validate(p.store, req); err != nil {
		p.reject(req, err)
		return Outcome{}, err
	}

	txFee := p.fees.Compute(req.Amount)
	debit := req.Amount
	credit := req.Amount - txFee

	res, err := p.store.Transfer(req.Sender, req.Receiver, debit, credit)
	if err != nil {
		// Lost a race since the advisory check; the store mutated nothing.
		p.reject(req, err)
		return Outcome{}, err
	}

	outcome := Outcome{
		TransactionID:   uuid.NewString(),
		Amount:          req.Amount,
		Fee:             txFee,
		NetDebited:      debit,
		NetCredited:     credit,
		SenderBalance:   res.SenderBalance,
		ReceiverBalance: res.ReceiverBalance,
		CompletedAt:     time.Now().UTC(),
	}

	p.logger.Info("transfer applied",
		"transaction_id", outcome.TransactionID,
		"sender", req.Sender,
		"receiver", req.Receiver,
		"amount", req.Amount,
		"fee", txFee,
	)

	details := &notify.TransactionDetails{
		ID:          outcome.TransactionID,
		Sender:      req.Sender,
		Receiver:    req.Receiver,
		Amount:      req.Amount,
		Fee:         txFee,
		NetDebited:  debit,
		NetCredited: credit,
	}

	p.dispatcher.Publish(req.Sender, notify.Event{
		WalletID:    req.Sender,
		Kind:        notify.KindTransaction,
		Message:     "Outgoing transaction sent",
		Transaction: details,
	})
	p.dispatcher.Publish(req.Receiver, notify.Event{
		WalletID:    req.Receiver,
		Kind:        notify.KindTransaction,
		Message:     "Incoming transaction received",
		Transaction: details,
	})
	p.dispatcher.Publish(req.Sender, notify.BalanceUpdate(req.Sender, "Balance updated", res.SenderBalance, notify.SourceTransfer))
	p.dispatcher.Publish(req.Receiver, notify.BalanceUpdate(req.Receiver, "Balance updated", res.ReceiverBalance, notify.SourceTransfer))

	return outcome, nil
}

func (p *Processor) reject(req Request, cause error) {
	p.logger.Info("transfer rejected", "sender", req.Sender, "receiver", req.Receiver, "amount", req.Amount, "reason", cause)
	p.dispatcher.Publish(req.Sender, notify.Alert(req.Sender, "Transaction verification failed: "+cause.Error()))
}

// Confirm accepts a confirmation message for a previously emitted
// transaction. Settlement is not implemented: transactions settle
// immediately on Process, so this acknowledges the message and has no
// ledger effect.
func (p *Processor) Confirm(ctx context.Context, transactionID string) {
	p.logger.Info("transaction confirmation acknowledged (settlement not implemented)", "transaction_id", transactionID)
}
