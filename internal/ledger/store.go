package ledger

import "sync"

// Store holds wallet balances in integer minor units. It is the single
// source of truth for funds: every mutation serializes through its mutex,
// and both legs of a transfer are applied within one critical section so a
// concurrent transfer can never observe a half-applied state. Balances live
// for the process lifetime only.
type Store struct {
	mu       sync.RWMutex
	balances map[string]int64
}

// NewStore creates an empty in-memory balance store.
func NewStore() *Store {
	return &Store{balances: make(map[string]int64)}
}

// Ensure creates the wallet with the seed balance if it has not been seen
// before. It reports whether the entry was created, so callers can emit the
// one-time seed event exactly once even under concurrent registration.
func (s *Store) Ensure(walletID string, seed int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.balances[walletID]; exists {
		return false
	}
	s.balances[walletID] = seed
	return true
}

// Exists reports whether the wallet has a ledger entry.
func (s *Store) Exists(walletID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.balances[walletID]
	return exists
}

// Balance returns the current balance for the wallet. Reads are advisory
// snapshots; debit decisions are re-checked inside Transfer.
func (s *Store) Balance(walletID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, exists := s.balances[walletID]
	if !exists {
		return 0, ErrUnknownWallet
	}
	return balance, nil
}

// Adjust applies a signed delta to the wallet balance and returns the new
// balance. A debit that would take the balance negative fails with
// ErrInsufficientFunds and leaves the balance untouched. An unseen credit
// target is created at zero first.
func (s *Store) Adjust(walletID string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, exists := s.balances[walletID]
	if !exists {
		if delta < 0 {
			return 0, ErrUnknownWallet
		}
		balance = 0
	}
	if delta < 0 && balance+delta < 0 {
		return 0, ErrInsufficientFunds
	}
	balance += delta
	s.balances[walletID] = balance
	return balance, nil
}

// Transfer debits the sender and credits the receiver under a single lock.
// The affordability check happens inside the critical section, so concurrent
// transfers from the same sender are admitted in lock-acquisition order and
// can never over-debit against a stale balance. The receiver is created at
// zero if unseen; creation this way does not count as a registration seed.
func (s *Store) Transfer(sender, receiver string, debit, credit int64) (TransferResult, error) {
	if debit <= 0 || credit < 0 {
		return TransferResult{}, ErrInsufficientFunds
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	senderBalance, ok := s.balances[sender]
	if !ok {
		return TransferResult{}, ErrUnknownWallet
	}
	if senderBalance < debit {
		return TransferResult{}, ErrInsufficientFunds
	}

	receiverBalance := s.balances[receiver]

	senderBalance -= debit
	receiverBalance += credit

	s.balances[sender] = senderBalance
	s.balances[receiver] = receiverBalance

	return TransferResult{SenderBalance: senderBalance, ReceiverBalance: receiverBalance}, nil
}
