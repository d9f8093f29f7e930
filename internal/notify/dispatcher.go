package notify

import (
	"log/slog"
	"sync"

	"github.com/wallet-notify/wallet_notify/internal/ledger"
)

// Conn is a connection handle capable of receiving events. Send must not
// block: a slow subscriber drops events rather than stalling the publisher.
type Conn interface {
	ID() string
	Send(Event) error
}

// Dispatcher routes events to the connections subscribed to each wallet
// identifier and owns the registration bootstrap: the first time a wallet
// identifier is registered it seeds the ledger entry and emits a single
// seed-tagged balance_update to that wallet alone.
type Dispatcher struct {
	mu      sync.RWMutex
	subs    map[string]map[string]Conn     // walletID -> connID -> conn
	wallets map[string]map[string]struct{} // connID -> walletIDs, for disconnect cleanup

	store  *ledger.Store
	seed   int64
	logger *slog.Logger
}

// NewDispatcher builds a dispatcher over the given ledger store. seed is the
// balance granted to a wallet on first registration.
func NewDispatcher(store *ledger.Store, seed int64, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		subs:    make(map[string]map[string]Conn),
		wallets: make(map[string]map[string]struct{}),
		store:   store,
		seed:    seed,
		logger:  logger,
	}
}

// Register subscribes the connection to the wallet channel (conn may be nil
// for transports that only register, such as the REST endpoint) and ensures
// the wallet has a ledger entry. It reports whether the wallet was newly
// seeded. Re-registering a known wallet neither reseeds nor re-emits.
func (d *Dispatcher) Register(conn Conn, walletID string) bool {
	if conn != nil {
		d.subscribe(conn, walletID)
	}

	if !d.store.Ensure(walletID, d.seed) {
		return false
	}

	d.logger.Info("wallet registered", "wallet_id", walletID, "seed_balance", d.seed)
	d.Publish(walletID, BalanceUpdate(walletID, "Wallet registered", d.seed, SourceSeed))
	return true
}

func (d *Dispatcher) subscribe(conn Conn, walletID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	conns, ok := d.subs[walletID]
	if !ok {
		conns = make(map[string]Conn)
		d.subs[walletID] = conns
	}
	conns[conn.ID()] = conn

	ids, ok := d.wallets[conn.ID()]
	if !ok {
		ids = make(map[string]struct{})
		d.wallets[conn.ID()] = ids
	}
	ids[walletID] = struct{}{}
}

// Publish delivers the event to every connection currently subscribed to the
// wallet. Best effort only: delivery failures are logged and dropped, and a
// wallet with zero subscribers is a silent no-op.
func (d *Dispatcher) Publish(walletID string, ev Event) {
	d.mu.RLock()
	conns := make([]Conn, 0, len(d.subs[walletID]))
	for _, c := range d.subs[walletID] {
		conns = append(conns, c)
	}
	d.mu.RUnlock()

	for _, c := range conns {
		if err := c.Send(ev); err != nil {
			d.logger.Debug("dropped event", "wallet_id", walletID, "conn_id", c.ID(), "type", ev.Kind, "error", err)
		}
	}
}

// Disconnect removes the connection from every wallet subscription set.
func (d *Dispatcher) Disconnect(conn Conn) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for walletID := range d.wallets[conn.ID()] {
		delete(d.subs[walletID], conn.ID())
		if len(d.subs[walletID]) == 0 {
			delete(d.subs, walletID)
		}
	}
	delete(d.wallets, conn.ID())
}

// Subscribers returns the number of connections subscribed to the wallet.
func (d *Dispatcher) Subscribers(walletID string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs[walletID])
}
