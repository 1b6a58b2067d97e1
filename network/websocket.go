package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/arena-mp/config"
	"github.com/coder/websocket"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("ClientState(%d)", int(s))
}

// Options tunes a websocket transport. Zero values fall back to config.Net.
type Options struct {
	DialTimeout    time.Duration
	WriteTimeout   time.Duration
	ReadLimit      int64
	InboundBuffer  int
	OutboundBuffer int
}

// DefaultOptions returns the transport options from config.Net.
func DefaultOptions() Options {
	return Options{
		DialTimeout:    config.Net.DialTimeout,
		WriteTimeout:   config.Net.WriteTimeout,
		ReadLimit:      config.Net.ReadLimit,
		InboundBuffer:  config.Net.InboundBuffer,
		OutboundBuffer: config.Net.OutboundBuffer,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DialTimeout <= 0 {
		o.DialTimeout = d.DialTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = d.WriteTimeout
	}
	if o.ReadLimit <= 0 {
		o.ReadLimit = d.ReadLimit
	}
	if o.InboundBuffer <= 0 {
		o.InboundBuffer = d.InboundBuffer
	}
	if o.OutboundBuffer <= 0 {
		o.OutboundBuffer = d.OutboundBuffer
	}
	return o
}

// Stats is a point-in-time copy of transport counters.
type Stats struct {
	FramesIn  uint64
	FramesOut uint64
	BytesIn   uint64
	BytesOut  uint64
	Connected time.Time
}

// WebSocketTransport is a Transport over a websocket connection. A reader and
// a writer goroutine own the socket; the game tick only touches channels, so
// ReadMessage and WriteMessage never block.
type WebSocketTransport struct {
	mu        sync.RWMutex
	state     ClientState
	lastError error

	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	inbound  chan []byte // closed by the reader on exit
	outbound chan []byte

	closeOnce sync.Once
	wg        sync.WaitGroup

	framesIn, framesOut atomic.Uint64
	bytesIn, bytesOut   atomic.Uint64
	connectedAt         time.Time
}

// Dial opens a websocket connection to url and starts the reader and writer.
func Dial(ctx context.Context, url string, opts Options) (*WebSocketTransport, error) {
	opts = opts.withDefaults()

	dialCtx, cancelDial := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancelDial()

	conn, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	conn.SetReadLimit(opts.ReadLimit)

	log.Printf("[net] connected to %s", url)
	return newWebSocketTransport(conn, opts), nil
}

func newWebSocketTransport(conn *websocket.Conn, opts Options) *WebSocketTransport {
	ctx, cancel := context.WithCancel(context.Background())
	t := &WebSocketTransport{
		state:       StateConnected,
		conn:        conn,
		ctx:         ctx,
		cancel:      cancel,
		opts:        opts,
		inbound:     make(chan []byte, opts.InboundBuffer),
		outbound:    make(chan []byte, opts.OutboundBuffer),
		connectedAt: time.Now(),
	}

	t.wg.Add(2)
	go t.readLoop()
	go t.writeLoop()
	return t
}

func (t *WebSocketTransport) readLoop() {
	defer t.wg.Done()
	defer close(t.inbound)

	for {
		_, data, err := t.conn.Read(t.ctx)
		if err != nil {
			t.fail(fmt.Errorf("read: %w", err))
			return
		}
		t.framesIn.Add(1)
		t.bytesIn.Add(uint64(len(data)))

		// Block rather than drop: snapshots are deltas against what we track.
		select {
		case t.inbound <- data:
		case <-t.ctx.Done():
			return
		}
	}
}

func (t *WebSocketTransport) writeLoop() {
	defer t.wg.Done()

	for {
		select {
		case <-t.ctx.Done():
			return
		case data := <-t.outbound:
			wctx, cancel := context.WithTimeout(t.ctx, t.opts.WriteTimeout)
			err := t.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				t.fail(fmt.Errorf("write: %w", err))
				return
			}
			t.framesOut.Add(1)
			t.bytesOut.Add(uint64(len(data)))
		}
	}
}

// ReadMessage returns the next inbound frame, or ErrNoMessage if none is queued.
// After the connection ends and the queue is drained it returns the terminal error.
func (t *WebSocketTransport) ReadMessage() ([]byte, error) {
	select {
	case data, ok := <-t.inbound:
		if !ok {
			return nil, t.terminalErr()
		}
		return data, nil
	default:
		return nil, ErrNoMessage
	}
}

// WriteMessage queues data for the writer goroutine.
func (t *WebSocketTransport) WriteMessage(data []byte) error {
	if t.ctx.Err() != nil {
		return t.terminalErr()
	}
	frame := append([]byte(nil), data...)
	select {
	case t.outbound <- frame:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close sends a normal closure and stops both goroutines. Safe to call more than once.
func (t *WebSocketTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.mu.Lock()
		failed := t.state == StateError
		if !failed {
			t.state = StateDisconnected
		}
		t.mu.Unlock()

		err = t.conn.Close(websocket.StatusNormalClosure, "client closing")
		t.cancel()
		t.wg.Wait()
		if failed || errors.Is(err, net.ErrClosed) || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
			err = nil
		}
	})
	return err
}

func (t *WebSocketTransport) fail(err error) {
	t.mu.Lock()
	closing := t.state == StateDisconnected
	if !closing && t.state != StateError {
		t.state = StateError
		t.lastError = err
	}
	t.mu.Unlock()

	if !closing {
		if status := websocket.CloseStatus(err); status != -1 {
			log.Printf("[net] connection closed by peer: %v", status)
		} else {
			log.Printf("[net] connection error: %v", err)
		}
	}
	t.cancel()
}

func (t *WebSocketTransport) terminalErr() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.lastError != nil {
		return fmt.Errorf("%w: %v", ErrClosed, t.lastError)
	}
	return ErrClosed
}

func (t *WebSocketTransport) State() ClientState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Err returns the error that ended the connection, if any.
func (t *WebSocketTransport) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastError
}

func (t *WebSocketTransport) Stats() Stats {
	return Stats{
		FramesIn:  t.framesIn.Load(),
		FramesOut: t.framesOut.Load(),
		BytesIn:   t.bytesIn.Load(),
		BytesOut:  t.bytesOut.Load(),
		Connected: t.connectedAt,
	}
}
