package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/fonts"
	"github.com/automoto/arena-mp/network"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type connectResult struct {
	transport *network.WebSocketTransport
	userID    string
	err       error
}

// ConnectScene dials the server in the background and hands over to the
// networked scene once joined. On failure it shows the error and waits for
// Enter to try again.
type ConnectScene struct {
	sceneChanger SceneChanger
	session      Session

	mu      sync.Mutex
	dialing bool
	result  *connectResult

	status    string
	lastError error
	enterDown bool
}

// NewConnectScene creates a connect scene. lastErr, if set, is shown and the
// scene waits for the player before dialing again.
func NewConnectScene(sc SceneChanger, session Session, lastErr error) *ConnectScene {
	s := &ConnectScene{
		sceneChanger: sc,
		session:      session,
		lastError:    lastErr,
	}
	if lastErr == nil {
		s.dial()
	}
	return s
}

func (s *ConnectScene) Update() {
	enter := ebiten.IsKeyPressed(ebiten.KeyEnter)
	pressed := enter && !s.enterDown
	s.enterDown = enter

	s.mu.Lock()
	res := s.result
	s.result = nil
	dialing := s.dialing
	s.mu.Unlock()

	if res != nil {
		if res.err != nil {
			log.Printf("[client] connect failed: %v", res.err)
			s.lastError = res.err
		} else {
			s.sceneChanger.ChangeScene(NewNetworkedScene(s.sceneChanger, s.session, res.transport, res.userID))
			return
		}
	}

	if pressed && !dialing {
		s.lastError = nil
		s.dial()
	}
}

func (s *ConnectScene) dial() {
	s.mu.Lock()
	s.dialing = true
	s.mu.Unlock()
	s.status = fmt.Sprintf("Connecting to %s (room %s)...", s.session.URL, s.session.RoomID)

	go func() {
		t, userID, err := network.Connect(context.Background(), s.session.URL, s.session.Token, s.session.RoomID, network.DefaultOptions())

		s.mu.Lock()
		s.dialing = false
		s.result = &connectResult{transport: t, userID: userID, err: err}
		s.mu.Unlock()
	}()
}

func (s *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	text.Draw(screen, cfg.C.Title, fonts.Title.Get(), 40, 80, cfg.Colors.HUDText)

	if s.lastError != nil {
		text.Draw(screen, "Connection failed: "+s.lastError.Error(), fonts.Regular.Get(), 40, 140, cfg.Colors.ErrorText)
		text.Draw(screen, "Press Enter to retry", fonts.Regular.Get(), 40, 170, cfg.Colors.HUDText)
		return
	}
	text.Draw(screen, s.status, fonts.Regular.Get(), 40, 140, cfg.Colors.HUDText)
}
