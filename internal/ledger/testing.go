package ledger

// SetBalance is a test helper that overwrites the balance for a wallet,
// creating the entry if needed.
func SetBalance(s *Store, walletID string, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[walletID] = amount
}
