package notify

// Event kinds delivered to wallet subscribers.
const (
	KindTransaction   = "transaction"
	KindBalanceUpdate = "balance_update"
	KindAlert         = "alert"
	KindConfirmation  = "confirmation"
)

// Balance update sources. The one-time registration seed is tagged so
// clients and tests can tell it apart from transfer-driven changes.
const (
	SourceSeed     = "seed"
	SourceTransfer = "transfer"
)

// TransactionDetails describes a processed transfer as carried on events.
// Amount is the requested amount; the fee and both net effects are explicit
// fields so no consumer ever has to infer the fee policy from mutated state.
type TransactionDetails struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	Receiver    string `json:"receiver"`
	Amount      int64  `json:"amount"`
	Fee         int64  `json:"fee"`
	NetDebited  int64  `json:"net_debited"`
	NetCredited int64  `json:"net_credited"`
}

// Event is a one-way, fire-and-forget notification routed by wallet
// identifier. Immutable once constructed.
type Event struct {
	WalletID       string              `json:"wallet_id"`
	Kind           string              `json:"type"`
	Message        string              `json:"message"`
	Transaction    *TransactionDetails `json:"transaction,omitempty"`
	UpdatedBalance *int64              `json:"updated_balance,omitempty"`
	Source         string              `json:"source,omitempty"`
}

// BalanceUpdate builds a balance_update event for a wallet.
func BalanceUpdate(walletID, message string, balance int64, source string) Event {
	return Event{
		WalletID:       walletID,
		Kind:           KindBalanceUpdate,
		Message:        message,
		UpdatedBalance: &balance,
		Source:         source,
	}
}

// Alert builds an alert event for a wallet.
func Alert(walletID, message string) Event {
	return Event{WalletID: walletID, Kind: KindAlert, Message: message}
}
