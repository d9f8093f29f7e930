package transfer

import (
	"context"
	"sync"
	"testing"

	"github.com/wallet-notify/wallet_notify/internal/fee"
	"github.com/wallet-notify/wallet_notify/internal/ledger"
	"github.com/wallet-notify/wallet_notify/internal/logging"
	"github.com/wallet-notify/wallet_notify/internal/notify"
)

type recordingConn struct {
	mu     sync.Mutex
	id     string
	events []notify.Event
}

func (c *recordingConn) ID() string { return c.id }

func (c *recordingConn) Send(ev notify.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *recordingConn) byKind(kind string) []notify.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []notify.Event
	for _, ev := range c.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func setupProcessor(t *testing.T, seed int64, bps int64) (*Processor, *ledger.Store, *notify.Dispatcher) {
	t.Helper()
	store := ledger.NewStore()
	dispatcher := notify.NewDispatcher(store, seed, logging.Discard())
	processor := NewProcessor(store, fee.NewPolicy(bps), dispatcher, logging.Discard())
	return processor, store, dispatcher
}

func TestProcessAppliesFeeInclusiveTransfer(t *testing.T) {
	processor, store, dispatcher := setupProcessor(t, 1_000, fee.DefaultBps)

	sender := &recordingConn{id: "s"}
	receiver := &recordingConn{id: "r"}
	dispatcher.Register(sender, "A")
	dispatcher.Register(receiver, "B")

	outcome, err := processor.Process(context.Background(), Request{Sender: "A", Receiver: "B", Amount: 100})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if outcome.Fee != 1 || outcome.NetDebited != 100 || outcome.NetCredited != 99 {
		t.Fatalf("unexpected fee accounting: %+v", outcome)
	}
	if outcome.SenderBalance != 900 {
		t.Fatalf("expected sender balance 900, got %d", outcome.SenderBalance)
	}
	if outcome.ReceiverBalance != 1_099 {
		t.Fatalf("expected receiver balance 1099, got %d", outcome.ReceiverBalance)
	}
	if outcome.TransactionID == "" {
		t.Fatalf("expected a transaction id")
	}

	a, _ := store.Balance("A")
	b, _ := store.Balance("B")
	if a != 900 || b != 1_099 {
		t.Fatalf("stored balances wrong: a=%d b=%d", a, b)
	}

	// Exactly one transaction event and one transfer-tagged balance update
	// per party, beyond the seed event from registration.
	for name, conn := range map[string]*recordingConn{"sender": sender, "receiver": receiver} {
		if got := len(conn.byKind(notify.KindTransaction)); got != 1 {
			t.Fatalf("%s expected 1 transaction event, got %d", name, got)
		}
		updates := conn.byKind(notify.KindBalanceUpdate)
		transferUpdates := 0
		for _, ev := range updates {
			if ev.Source == notify.SourceTransfer {
				transferUpdates++
			}
		}
		if transferUpdates != 1 {
			t.Fatalf("%s expected 1 transfer balance update, got %d", name, transferUpdates)
		}
	}

	tx := sender.byKind(notify.KindTransaction)[0].Transaction
	if tx == nil || tx.Amount != 100 || tx.Fee != 1 || tx.NetCredited != 99 || tx.NetDebited != 100 {
		t.Fatalf("transaction details wrong: %+v", tx)
	}
}

func TestProcessRejectionAlertsSenderOnly(t *testing.T) {
	processor, store, dispatcher := setupProcessor(t, 100, fee.DefaultBps)

	sender := &recordingConn{id: "s"}
	receiver := &recordingConn{id: "r"}
	dispatcher.Register(sender, "A")
	dispatcher.Register(receiver, "B")

	_, err := processor.Process(context.Background(), Request{Sender: "A", Receiver: "B", Amount: 500})
	if err != ledger.ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := len(sender.byKind(notify.KindAlert)); got != 1 {
		t.Fatalf("sender expected 1 alert, got %d", got)
	}
	if got := len(receiver.byKind(notify.KindAlert)); got != 0 {
		t.Fatalf("receiver expected no alerts, got %d", got)
	}
	if got := len(sender.byKind(notify.KindTransaction)); got != 0 {
		t.Fatalf("rejected transfer emitted transaction events")
	}

	a, _ := store.Balance("A")
	b, _ := store.Balance("B")
	if a != 100 || b != 100 {
		t.Fatalf("rejected transfer mutated balances: a=%d b=%d", a, b)
	}
}

func TestProcessAutoCreatesUnknownReceiver(t *testing.T) {
	processor, store, dispatcher := setupProcessor(t, 1_000, 0)
	dispatcher.Register(nil, "A")

	outcome, err := processor.Process(context.Background(), Request{Sender: "A", Receiver: "newcomer", Amount: 250})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if outcome.ReceiverBalance != 250 {
		t.Fatalf("expected receiver balance 250, got %d", outcome.ReceiverBalance)
	}

	// Auto-creation starts at zero and must not trigger the seed bootstrap.
	if balance, _ := store.Balance("newcomer"); balance != 250 {
		t.Fatalf("expected newcomer balance 250, got %d", balance)
	}
}

func TestProcessConcurrentDebitsAdmitOnlyAffordable(t *testing.T) {
	processor, store, dispatcher := setupProcessor(t, 1_000, 0)
	dispatcher.Register(nil, "A")
	dispatcher.Register(nil, "B")

	// Four workers moving 400 each: only two fit into 1000.
	const workers = 4
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := processor.Process(context.Background(), Request{Sender: "A", Receiver: "B", Amount: 400}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 2 {
		t.Fatalf("expected exactly 2 transfers to succeed, got %d", succeeded)
	}
	a, _ := store.Balance("A")
	b, _ := store.Balance("B")
	if a != 200 || b != 800 {
		t.Fatalf("unexpected balances: a=%d b=%d", a, b)
	}
}

func TestConfirmIsANoOp(t *testing.T) {
	processor, store, dispatcher := setupProcessor(t, 1_000, fee.DefaultBps)
	sender := &recordingConn{id: "s"}
	dispatcher.Register(sender, "A")

	processor.Confirm(context.Background(), "some-transaction")

	if balance, _ := store.Balance("A"); balance != 1_000 {
		t.Fatalf("confirm mutated the ledger: %d", balance)
	}
	if got := len(sender.byKind(notify.KindConfirmation)); got != 0 {
		t.Fatalf("confirm emitted %d events from the processor", got)
	}
}
