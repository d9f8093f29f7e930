package transfer

import (
	"errors"

	"github.com/wallet-notify/wallet_notify/internal/ledger"
)

var (
	// ErrInvalidAmount rejects non-positive transfer amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrMissingParty rejects requests without both wallet identifiers.
	ErrMissingParty = errors.New("sender and receiver are required")

	// ErrUnknownSender rejects transfers from a wallet that was never registered.
	ErrUnknownSender = errors.New("unknown sender wallet")

	// ErrSelfTransfer rejects transfers where sender and receiver are the same wallet.
	ErrSelfTransfer = errors.New("sender and receiver must differ")
)

// Request describes a proposed transfer. Amount is the requested pre-fee
// amount in minor units. Requests are never mutated by processing.
type Request struct {
	Sender   string
	Receiver string
	Amount   int64
}

// Validate decides whether the request is well-formed and fundable against a
// snapshot of the ledger. It never mutates state; the affordability check is
// advisory and is re-run inside the store's transfer critical section.
func Validate(store *ledger.Store, req Request) error {
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}
	if req.Sender == "" || req.Receiver == "" {
		return ErrMissingParty
	}
	if req.Sender == req.Receiver {
		return ErrSelfTransfer
	}
	balance, err := store.Balance(req.Sender)
	if err != nil {
		return ErrUnknownSender
	}
	if balance < req.Amount {
		return ledger.ErrInsufficientFunds
	}
	return nil
}
