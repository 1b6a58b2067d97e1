package sim

import (
	"errors"

	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/shared/protocol"
)

// Runner drives one State from one Transport, a tick at a time.
type Runner struct {
	State     *State
	Transport network.Transport
	Encoder   *Encoder

	MaxSnapshotsPerTick int

	readWarn   *network.Throttle
	decodeWarn *network.Throttle
}

func NewRunner(s *State, t network.Transport) *Runner {
	return &Runner{
		State:               s,
		Transport:           t,
		Encoder:             NewEncoder(t),
		MaxSnapshotsPerTick: config.Net.MaxSnapshotsPerTick,
		readWarn:            network.NewThrottle(config.Net.WarnInterval, config.Net.WarnBurst),
		decodeWarn:          network.NewThrottle(config.Net.WarnInterval, config.Net.WarnBurst),
	}
}

// Step runs one tick: drain pending snapshots, reconcile, interpolate, move
// the camera, then send input. A transport read error is logged and returned
// after the rest of the tick has run; it does not stop the pipeline.
func (r *Runner) Step(frame InputFrame, view Viewport, dt float64) error {
	readErr := r.drain()

	r.State.Interpolate(dt)
	r.State.UpdateCamera(view, dt)
	r.Encoder.Encode(frame, r.State, view)

	return readErr
}

func (r *Runner) drain() error {
	limit := r.MaxSnapshotsPerTick
	if limit <= 0 {
		limit = 1
	}

	for i := 0; i < limit; i++ {
		data, err := r.Transport.ReadMessage()
		if errors.Is(err, network.ErrNoMessage) {
			return nil
		}
		if err != nil {
			r.State.Stats.ReadFailures++
			r.readWarn.Printf("[sim] transport read failed: %v", err)
			return err
		}

		snap, err := protocol.DecodeSnapshot(data)
		if err != nil {
			r.State.Stats.Dropped++
			r.decodeWarn.Printf("[sim] dropping frame: %v", err)
			continue
		}
		if snap == nil {
			continue
		}
		r.State.ApplySnapshot(snap)
	}
	return nil
}
