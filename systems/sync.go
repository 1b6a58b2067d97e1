package systems

import (
	"errors"
	"log"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// NewSyncSystem returns an update system that polls input and runs one sim
// tick. onClosed is called once when the transport reports it has closed.
func NewSyncSystem(runner *sim.Runner, poller *InputPoller, onClosed func(error)) func(*ecs.ECS) {
	closed := false
	return func(_ *ecs.ECS) {
		if steps := poller.ZoomSteps(); steps != 0 {
			runner.State.ZoomBy(steps)
		}

		frame := poller.Poll()
		dt := 1.0 / float64(ebiten.TPS())

		err := runner.Step(frame, screenViewport(), dt)
		if err == nil || closed {
			return
		}
		if errors.Is(err, network.ErrClosed) {
			closed = true
			log.Printf("[client] connection lost: %v", err)
			if onClosed != nil {
				onClosed(err)
			}
		}
	}
}

// screenViewport is the logical screen size; Layout always reports config.C.
func screenViewport() sim.Viewport {
	return sim.Viewport{Width: float64(cfg.C.Width), Height: float64(cfg.C.Height)}
}
