package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/gorilla/websocket"
)

const (
	joinTimeout  = 10 * time.Second
	writeTimeout = 3 * time.Second
	sendBuffer   = 16
)

// Config configures a dev server.
type Config struct {
	Level       *ServerLevel
	TickRate    int
	RoomID      string  // Rooms other than this are refused; empty accepts any
	MoveSpeed   float64 // World units per second
	BulletSpeed float64 // World units per second
}

type commandKind int

const (
	cmdJoin commandKind = iota
	cmdLeave
	cmdInput
)

type command struct {
	kind   commandKind
	client *client
	input  any
}

type client struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Server runs the authoritative world and streams snapshots to every client.
type Server struct {
	world    *World
	loop     *GameLoop
	roomID   string
	upgrader websocket.Upgrader
	commands chan command
	http     *http.Server
	done     chan struct{}
	stopOnce sync.Once

	// Owned by the loop goroutine; mu guards reads from other goroutines.
	clients map[string]*client
	mu      sync.RWMutex
}

// NewServer creates a new game server
func NewServer(cfg Config) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 20
	}
	perTick := 1 / float64(cfg.TickRate)

	s := &Server{
		world:  NewWorld(cfg.Level, cfg.MoveSpeed*perTick, cfg.BulletSpeed*perTick),
		roomID: cfg.RoomID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		commands: make(chan command, 256),
		done:     make(chan struct{}),
		clients:  make(map[string]*client),
	}
	s.loop = NewGameLoop(s, cfg.TickRate)
	return s
}

// Handler serves the websocket endpoint at /connect.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/connect", s.handleConnect)
	return mux
}

// Start runs the game loop and serves on addr until Stop is called.
func (s *Server) Start(addr string) error {
	go s.loop.Run()

	s.http = &http.Server{Addr: addr, Handler: s.Handler()}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.loop.Stop()
		if s.http != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.http.Shutdown(ctx)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, c := range s.clients {
			c.close()
		}
	})
}

// enqueue hands a command to the loop. It reports false once the server has
// stopped, since nothing drains the queue after that.
func (s *Server) enqueue(cmd command) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.commands <- cmd:
		return true
	case <-s.done:
		return false
	}
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[devserver] upgrade failed: %v", err)
		return
	}

	id, err := s.readJoin(conn)
	if err != nil {
		log.Printf("[devserver] join refused: %v", err)
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}

	c := &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	if !s.enqueue(command{kind: cmdJoin, client: c}) {
		c.close()
		return
	}
	go s.writeLoop(c)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			s.enqueue(command{kind: cmdLeave, client: c})
			c.close()
			return
		}

		input, err := protocol.DecodeInput(payload)
		if err != nil {
			log.Printf("[devserver] discarding malformed message from %s: %v", id, err)
			continue
		}
		if !s.enqueue(command{kind: cmdInput, client: c, input: input}) {
			c.close()
			return
		}
	}
}

func (s *Server) readJoin(conn *websocket.Conn) (string, error) {
	_ = conn.SetReadDeadline(time.Now().Add(joinTimeout))
	defer conn.SetReadDeadline(time.Time{})

	_, payload, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("read join: %w", err)
	}
	req, err := protocol.DecodeJoin(payload)
	if err != nil {
		return "", err
	}
	if s.roomID != "" && req.StateID != s.roomID {
		return "", fmt.Errorf("unknown room %q", req.StateID)
	}
	return network.UserIDFromToken(req.Token)
}

func (s *Server) writeLoop(c *client) {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		}
	}
}

// Tick runs one server tick: apply queued commands, step the world and
// broadcast a snapshot.
func (s *Server) Tick() {
	s.ProcessCommands()
	s.world.Step()
	s.Broadcast(uint64(time.Now().UnixMilli()))
}

// ProcessCommands applies everything the connection handlers queued since the last tick.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Server) apply(cmd command) {
	c := cmd.client
	switch cmd.kind {
	case cmdJoin:
		s.mu.Lock()
		if old, ok := s.clients[c.id]; ok {
			log.Printf("[devserver] %s reconnected, dropping previous connection", c.id)
			old.close()
		}
		s.clients[c.id] = c
		s.mu.Unlock()
		s.world.AddPlayer(c.id)
		log.Printf("[devserver] client %s joined", c.id)

	case cmdLeave:
		s.mu.Lock()
		current := s.clients[c.id] == c
		if current {
			delete(s.clients, c.id)
		}
		s.mu.Unlock()
		if current {
			s.world.RemovePlayer(c.id)
			log.Printf("[devserver] client %s left", c.id)
		}

	case cmdInput:
		s.mu.RLock()
		current := s.clients[c.id] == c
		s.mu.RUnlock()
		if !current {
			return
		}
		if err := s.world.ApplyInput(c.id, cmd.input); err != nil {
			log.Printf("[devserver] %v", err)
		}
	}
}

// Broadcast sends the current world state to every client. A client whose
// queue is full skips this snapshot; the next one carries full state anyway.
func (s *Server) Broadcast(ts uint64) {
	data, err := protocol.EncodeSnapshot(s.world.Snapshot(ts))
	if err != nil {
		log.Printf("[devserver] encode snapshot: %v", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("[devserver] send queue full for %s, skipping snapshot", c.id)
		}
	}
}

// World returns the simulation. Only touch it from the loop goroutine.
func (s *Server) World() *World {
	return s.world
}

// PlayerCount returns the number of connected players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
