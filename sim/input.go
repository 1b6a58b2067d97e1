package sim

import (
	"log"

	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
)

// MoveKey indexes the four movement keys in priority order.
type MoveKey int

const (
	MoveUp MoveKey = iota
	MoveDown
	MoveLeft
	MoveRight
	moveKeyCount
)

// InputFrame is one tick of polled input, independent of any input library.
type InputFrame struct {
	Held         [moveKeyCount]bool
	JustPressed  [moveKeyCount]bool
	JustReleased [moveKeyCount]bool

	Clicked bool // Primary button went down this tick

	CursorMoved      bool
	CursorX, CursorY float64 // Screen pixels
}

// Movement returns the direction to report and whether any movement key
// changed this tick. The first held key (up, down, left, right) decides,
// unless a key was just pressed, in which case the first of those wins.
// With nothing held the direction is DirectionNone.
func (f InputFrame) Movement() (messages.Direction, bool) {
	changed := false
	dir := messages.DirectionNone

	for k := MoveUp; k < moveKeyCount; k++ {
		if f.JustPressed[k] || f.JustReleased[k] {
			changed = true
		}
		if dir == messages.DirectionNone && f.Held[k] {
			dir = k.direction()
		}
	}
	for k := MoveUp; k < moveKeyCount; k++ {
		if f.JustPressed[k] {
			dir = k.direction()
			break
		}
	}
	return dir, changed
}

func (k MoveKey) direction() messages.Direction {
	return messages.Direction(k) + messages.DirectionUp
}

// Encoder turns input frames into outbound messages. Sends are fire and
// forget: a failed write is logged and counted, never retried.
type Encoder struct {
	transport network.Transport
	warn      *network.Throttle

	Sent   uint64
	Failed uint64
}

func NewEncoder(t network.Transport) *Encoder {
	return &Encoder{
		transport: t,
		warn:      network.NewThrottle(config.Net.WarnInterval, config.Net.WarnBurst),
	}
}

// Encode emits at most one move message, one aim message per local player and
// one click message for the frame.
func (e *Encoder) Encode(frame InputFrame, s *State, view Viewport) {
	if dir, changed := frame.Movement(); changed {
		e.send(protocol.EncodeMove(dir))
	}

	if frame.CursorMoved {
		if wx, wy, ok := s.ScreenToWorld(view, frame.CursorX, frame.CursorY); ok {
			tags.LocalPlayer.Each(s.World, func(entry *donburi.Entry) {
				pose := components.Pose.Get(entry)
				angle := gamemath.AimAngle(pose.X, pose.Y, wx, wy)
				e.send(protocol.EncodeAngle(float32(angle)))
			})
		}
	}

	if frame.Clicked {
		e.send(protocol.EncodeClick())
	}
}

func (e *Encoder) send(data []byte, err error) {
	if err != nil {
		log.Printf("[sim] encode input: %v", err)
		return
	}
	if err := e.transport.WriteMessage(data); err != nil {
		e.Failed++
		e.warn.Printf("[sim] input write failed: %v", err)
		return
	}
	e.Sent++
}
