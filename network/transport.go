package network

import (
	"errors"
	"sync"
)

var (
	// ErrNoMessage means nothing is pending right now. It is not a failure.
	ErrNoMessage = errors.New("no message pending")
	// ErrClosed is returned once the transport has been closed or the peer went away.
	ErrClosed = errors.New("transport closed")
	// ErrSendQueueFull is returned when the outbound queue cannot take another frame.
	ErrSendQueueFull = errors.New("send queue full")
)

// Transport is a persistent bidirectional message connection.
// ReadMessage must never block: it returns ErrNoMessage when no frame is
// pending. A nil or empty payload with a nil error is a valid (empty) frame.
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// LoopbackTransport is an in-memory Transport. Frames queued with Deliver are
// returned by ReadMessage in order; frames passed to WriteMessage are kept for
// inspection with Sent. Used by tests and for replaying captured sessions.
type LoopbackTransport struct {
	mu       sync.Mutex
	inbound  [][]byte
	sent     [][]byte
	closed   bool
	readErr  error
	writeErr error
}

func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{}
}

// Deliver queues frames for ReadMessage.
func (l *LoopbackTransport) Deliver(frames ...[]byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inbound = append(l.inbound, frames...)
}

// FailReads makes every subsequent ReadMessage return err (nil clears it).
func (l *LoopbackTransport) FailReads(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readErr = err
}

// FailWrites makes every subsequent WriteMessage return err (nil clears it).
func (l *LoopbackTransport) FailWrites(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeErr = err
}

func (l *LoopbackTransport) ReadMessage() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readErr != nil {
		return nil, l.readErr
	}
	if len(l.inbound) == 0 {
		if l.closed {
			return nil, ErrClosed
		}
		return nil, ErrNoMessage
	}
	frame := l.inbound[0]
	l.inbound = l.inbound[1:]
	return frame, nil
}

func (l *LoopbackTransport) WriteMessage(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if l.writeErr != nil {
		return l.writeErr
	}
	l.sent = append(l.sent, append([]byte(nil), data...))
	return nil
}

func (l *LoopbackTransport) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// Sent returns a copy of every frame written so far.
func (l *LoopbackTransport) Sent() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.sent))
	copy(out, l.sent)
	return out
}

// Pending reports how many inbound frames are still queued.
func (l *LoopbackTransport) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inbound)
}
