package ws

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/wallet-notify/wallet_notify/internal/notify"
)

var (
	// ErrConnClosed indicates the connection has shut down.
	ErrConnClosed = errors.New("connection closed")

	// ErrBufferFull indicates the subscriber is too slow and the event was dropped.
	ErrBufferFull = errors.New("send buffer full")
)

// conn adapts a websocket session to the dispatcher's Conn interface. Events
// flow through a buffered channel drained by a single write pump, so Send
// never blocks the publisher: a full buffer drops the event, honoring the
// best-effort delivery contract.
type conn struct {
	id   string
	out  chan notify.Event
	done chan struct{}
	once sync.Once
}

func newConn(buffer int) *conn {
	if buffer < 1 {
		buffer = 1
	}
	return &conn{
		id:   uuid.NewString(),
		out:  make(chan notify.Event, buffer),
		done: make(chan struct{}),
	}
}

func (c *conn) ID() string { return c.id }

func (c *conn) Send(ev notify.Event) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}
	select {
	case c.out <- ev:
		return nil
	default:
		return ErrBufferFull
	}
}

func (c *conn) close() {
	c.once.Do(func() { close(c.done) })
}
