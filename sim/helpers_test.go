package sim

import (
	"math"
	"testing"

	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/messages"
)

func player(id string, x, y, aim float32) messages.PlayerState {
	return messages.PlayerState{ID: id, Position: messages.Position{X: x, Y: y}, AimAngle: aim}
}

func bullet(id int32, x, y float32) messages.BulletState {
	return messages.BulletState{ID: id, Position: messages.Position{X: x, Y: y}}
}

func snapshot(ts uint64, players []messages.PlayerState, bullets ...messages.BulletState) *messages.Snapshot {
	if players == nil {
		players = []messages.PlayerState{}
	}
	if bullets == nil {
		bullets = []messages.BulletState{}
	}
	return &messages.Snapshot{
		Type:      messages.UpdateTypeState,
		Timestamp: ts,
		State:     messages.GameState{Players: players, Bullets: bullets},
	}
}

func players(ps ...messages.PlayerState) []messages.PlayerState { return ps }

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func mustPose(t *testing.T, s *State, id string) components.PoseData {
	t.Helper()
	entry, ok := s.Player(id)
	if !ok {
		t.Fatalf("player %q not tracked", id)
	}
	return *components.Pose.Get(entry)
}

func mustBuffer(t *testing.T, s *State, id string) *components.InterpBufferData {
	t.Helper()
	entry, ok := s.Player(id)
	if !ok {
		t.Fatalf("player %q not tracked", id)
	}
	return components.InterpBuffer.Get(entry)
}
