package ledger

import "errors"

var (
	// ErrInsufficientFunds occurs when a debit would take a wallet balance
	// below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownWallet indicates the wallet identifier has never been
	// registered with the ledger.
	ErrUnknownWallet = errors.New("unknown wallet")
)

// TransferResult captures both post-transfer balances.
type TransferResult struct {
	SenderBalance   int64
	ReceiverBalance int64
}
