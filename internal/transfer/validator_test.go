package transfer

import (
	"testing"

	"github.com/wallet-notify/wallet_notify/internal/ledger"
)

func TestValidateRejectsNonPositiveAmount(t *testing.T) {
	store := ledger.NewStore()
	store.Ensure("a", 1_000)

	if err := Validate(store, Request{Sender: "a", Receiver: "b", Amount: 0}); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if err := Validate(store, Request{Sender: "a", Receiver: "b", Amount: -5}); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestValidateRejectsMissingParty(t *testing.T) {
	store := ledger.NewStore()
	if err := Validate(store, Request{Sender: "", Receiver: "b", Amount: 10}); err != ErrMissingParty {
		t.Fatalf("expected ErrMissingParty, got %v", err)
	}
	if err := Validate(store, Request{Sender: "a", Receiver: "", Amount: 10}); err != ErrMissingParty {
		t.Fatalf("expected ErrMissingParty, got %v", err)
	}
}

func TestValidateRejectsSelfTransfer(t *testing.T) {
	store := ledger.NewStore()
	store.Ensure("a", 1_000)
	if err := Validate(store, Request{Sender: "a", Receiver: "a", Amount: 10}); err != ErrSelfTransfer {
		t.Fatalf("expected ErrSelfTransfer, got %v", err)
	}
}

func TestValidateRejectsUnknownSender(t *testing.T) {
	store := ledger.NewStore()
	if err := Validate(store, Request{Sender: "ghost", Receiver: "b", Amount: 10}); err != ErrUnknownSender {
		t.Fatalf("expected ErrUnknownSender, got %v", err)
	}
}

func TestValidateRejectsUnfundable(t *testing.T) {
	store := ledger.NewStore()
	store.Ensure("a", 100)
	if err := Validate(store, Request{Sender: "a", Receiver: "b", Amount: 101}); err != ledger.ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestValidateAcceptsFundableRequest(t *testing.T) {
	store := ledger.NewStore()
	store.Ensure("a", 100)
	if err := Validate(store, Request{Sender: "a", Receiver: "b", Amount: 100}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	// Validation must not mutate anything.
	if balance, _ := store.Balance("a"); balance != 100 {
		t.Fatalf("validation mutated balance to %d", balance)
	}
	if store.Exists("b") {
		t.Fatalf("validation created the receiver")
	}
}
