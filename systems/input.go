package systems

import (
	"github.com/automoto/arena-mp/sim"
	"github.com/hajimehoshi/ebiten/v2"
)

// MoveBindings maps each movement key slot to the keys that drive it.
var MoveBindings = [...][]ebiten.Key{
	sim.MoveUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	sim.MoveDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	sim.MoveLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	sim.MoveRight: {ebiten.KeyD, ebiten.KeyArrowRight},
}

var (
	ZoomInKeys  = []ebiten.Key{ebiten.KeyE, ebiten.KeyEqual}
	ZoomOutKeys = []ebiten.Key{ebiten.KeyQ, ebiten.KeyMinus}
)

// InputPoller turns raw ebiten input into sim input frames. It keeps the
// previous tick's state so edges come from a current/previous comparison.
type InputPoller struct {
	held    [len(MoveBindings)]bool
	mouse   bool
	zoomIn  bool
	zoomOut bool

	cursorX, cursorY int
	hasCursor        bool
}

func NewInputPoller() *InputPoller {
	return &InputPoller{}
}

// Poll reads this tick's input. Call exactly once per tick.
func (p *InputPoller) Poll() sim.InputFrame {
	var frame sim.InputFrame

	for slot, keys := range MoveBindings {
		cur := anyKeyPressed(keys)
		frame.Held[slot] = cur
		frame.JustPressed[slot] = cur && !p.held[slot]
		frame.JustReleased[slot] = !cur && p.held[slot]
		p.held[slot] = cur
	}

	mouse := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	frame.Clicked = mouse && !p.mouse
	p.mouse = mouse

	cx, cy := ebiten.CursorPosition()
	if !p.hasCursor || cx != p.cursorX || cy != p.cursorY {
		frame.CursorMoved = true
	}
	p.cursorX, p.cursorY, p.hasCursor = cx, cy, true
	frame.CursorX, frame.CursorY = float64(cx), float64(cy)

	return frame
}

// ZoomSteps returns how many zoom steps were requested this tick:
// positive to zoom in, negative to zoom out.
func (p *InputPoller) ZoomSteps() int {
	steps := 0

	in := anyKeyPressed(ZoomInKeys)
	if in && !p.zoomIn {
		steps++
	}
	p.zoomIn = in

	out := anyKeyPressed(ZoomOutKeys)
	if out && !p.zoomOut {
		steps--
	}
	p.zoomOut = out

	_, wheel := ebiten.Wheel()
	switch {
	case wheel > 0:
		steps++
	case wheel < 0:
		steps--
	}
	return steps
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
