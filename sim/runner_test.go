package sim

import (
	"errors"
	"testing"

	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
)

func encodeSnap(t *testing.T, snap *messages.Snapshot) []byte {
	t.Helper()
	data, err := protocol.EncodeSnapshot(*snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return data
}

func TestRunnerStep(t *testing.T) {
	s := NewState("alice")
	l := network.NewLoopbackTransport()
	r := NewRunner(s, l)
	view := Viewport{Width: 200, Height: 100}

	l.Deliver(
		[]byte(`{"type":0,"ts":1,"state":{"players":[{"id":"alice","position":{"x":10,"y":5},"aimAngle":0}],"bullets":[]}}`),
		[]byte(`{"type":0,"ts":2,"state":{"players":[{"id":"alice"}],"bullets":[]}}`), // missing position
		[]byte{},
		encodeSnap(t, snapshot(3, players(player("alice", 10, 5, 0)), bullet(4, 1, 1))),
	)

	frame := InputFrame{Held: [4]bool{MoveUp: true}, JustPressed: [4]bool{MoveUp: true}}
	if err := r.Step(frame, view, tick); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}

	if s.Stats.Applied != 2 || s.Stats.Dropped != 1 {
		t.Fatalf("expected 2 applied and 1 dropped, got %+v", s.Stats)
	}
	if s.BulletCount() != 1 {
		t.Fatalf("expected the bullet from the last snapshot")
	}

	pose := mustPose(t, s, "alice")
	if !near(pose.X, 10) || !near(pose.Y, -5) {
		t.Fatalf("expected alice at (10, -5), got %+v", pose)
	}

	cam, _ := s.Camera()
	if cam.Position.X != pose.X || cam.Position.Y != pose.Y {
		t.Fatalf("expected camera on the local player, got %+v", cam.Position)
	}

	sent := l.Sent()
	if len(sent) != 1 || string(sent[0]) != `{"type":0,"direction":1}` {
		t.Fatalf("expected one move message, got %q", sent)
	}
}

func TestRunnerLimitsSnapshotsPerTick(t *testing.T) {
	s := NewState("alice")
	l := network.NewLoopbackTransport()
	r := NewRunner(s, l)
	r.MaxSnapshotsPerTick = 2

	for ts := uint64(1); ts <= 5; ts++ {
		l.Deliver(encodeSnap(t, snapshot(ts, nil)))
	}

	r.Step(InputFrame{}, Viewport{}, tick)
	if s.Stats.Applied != 2 || l.Pending() != 3 {
		t.Fatalf("expected 2 applied and 3 pending, got %d and %d", s.Stats.Applied, l.Pending())
	}

	r.Step(InputFrame{}, Viewport{}, tick)
	r.Step(InputFrame{}, Viewport{}, tick)
	if s.Stats.LastTimestamp != 5 || l.Pending() != 0 {
		t.Fatalf("expected all snapshots applied in order, last ts=%d pending=%d", s.Stats.LastTimestamp, l.Pending())
	}
}

func TestRunnerAppliesAnyUpdateType(t *testing.T) {
	s := NewState("alice")
	l := network.NewLoopbackTransport()
	r := NewRunner(s, l)

	l.Deliver([]byte(`{"type":1,"ts":5,"state":{"players":[{"id":"alice","position":{"x":10,"y":5},"aimAngle":0}],"bullets":[]}}`))
	l.Deliver([]byte(`{"type":7,"ts":6,"state":{"players":[{"id":"alice","position":{"x":10,"y":5},"aimAngle":0}],"bullets":[]}}`))
	r.Step(InputFrame{}, Viewport{}, tick)

	if s.Stats.Applied != 2 || s.Stats.LastTimestamp != 6 || s.PlayerCount() != 1 {
		t.Fatalf("expected both snapshots applied, got stats %+v players=%d", s.Stats, s.PlayerCount())
	}
	if _, ok := s.LocalPlayer(); !ok {
		t.Fatal("expected the local player to be spawned")
	}
}

func TestRunnerDropsFramesWithoutState(t *testing.T) {
	s := NewState("alice")
	l := network.NewLoopbackTransport()
	r := NewRunner(s, l)

	l.Deliver([]byte(`{"type":2,"ts":1}`))
	r.Step(InputFrame{}, Viewport{}, tick)

	if s.Stats.Dropped != 1 || s.Stats.Applied != 0 {
		t.Fatalf("expected a frame without state to be dropped, got stats %+v", s.Stats)
	}
}

func TestRunnerReportsReadErrorAndKeepsTicking(t *testing.T) {
	s := NewState("alice")
	l := network.NewLoopbackTransport()
	r := NewRunner(s, l)

	l.Deliver(encodeSnap(t, snapshot(1, players(player("alice", 0, 0, 0)))))
	r.Step(InputFrame{}, Viewport{}, tick)

	l.FailReads(network.ErrClosed)
	err := r.Step(InputFrame{Clicked: true}, Viewport{}, tick)
	if !errors.Is(err, network.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if s.Stats.ReadFailures != 1 {
		t.Fatalf("expected the failure to be counted, got %+v", s.Stats)
	}
	if r.Encoder.Sent != 1 {
		t.Fatalf("expected input to still be sent after a read failure")
	}
	if s.PlayerCount() != 1 {
		t.Fatalf("expected tracked state to survive a read failure")
	}
}
