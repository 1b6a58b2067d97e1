package core

import (
	"math"
	"testing"

	"github.com/automoto/arena-mp/shared/mapdata"
	"github.com/automoto/arena-mp/shared/messages"
)

// openLevel is a 100x100 map with no walls.
func openLevel() *ServerLevel {
	return NewServerLevel(&mapdata.Map{
		Bounds: mapdata.Bounds{TileSize: 10, Top: 0, Left: 0, Bottom: 10, Right: 10},
	})
}

// splitLevel is a 100x100 map with a wall filling x in [50, 60).
func splitLevel() *ServerLevel {
	return NewServerLevel(&mapdata.Map{
		Bounds: mapdata.Bounds{TileSize: 10, Top: 0, Left: 0, Bottom: 10, Right: 10},
		Walls:  []mapdata.Wall{{X: 5, Y: 0, Width: 1, Height: 10}},
	})
}

func place(pp *PlayerPhysics, x, y float64) {
	pp.Object.X, pp.Object.Y = x, y
	pp.Object.Update()
}

func TestSpawnPointsAvoidWalls(t *testing.T) {
	lvl := splitLevel()
	for n := 0; n < 50; n++ {
		x, y := lvl.SpawnPoint(n)
		if x >= 50 && x < 60 {
			t.Fatalf("spawn %d at (%v, %v) is inside the wall", n, x, y)
		}
		if !lvl.Contains(x, y) {
			t.Fatalf("spawn %d at (%v, %v) is outside the map", n, x, y)
		}
	}
}

func TestWallBlocksMovement(t *testing.T) {
	w := NewWorld(splitLevel(), 5, 10)
	w.AddPlayer("alice")
	pp, _ := w.Player("alice")
	place(pp, 10, 30)

	if err := w.ApplyInput("alice", messages.NewMoveInput(messages.DirectionRight)); err != nil {
		t.Fatalf("apply input: %v", err)
	}
	for i := 0; i < 20; i++ {
		w.Step()
	}

	if want := 50.0 - playerSize; pp.Object.X != want {
		t.Fatalf("expected player to stop against the wall at x=%v, got %v", want, pp.Object.X)
	}
	if pp.Object.Y != 30 {
		t.Fatalf("expected no vertical drift, got y=%v", pp.Object.Y)
	}
}

func TestMovementClampedToMap(t *testing.T) {
	w := NewWorld(openLevel(), 5, 10)
	w.AddPlayer("alice")
	pp, _ := w.Player("alice")
	place(pp, 3, 40)

	_ = w.ApplyInput("alice", messages.NewMoveInput(messages.DirectionLeft))
	w.Step()
	if pp.Object.X != 0 {
		t.Fatalf("expected clamp to the left edge, got %v", pp.Object.X)
	}

	_ = w.ApplyInput("alice", messages.NewMoveInput(messages.DirectionNone))
	w.Step()
	if pp.Object.X != 0 || pp.Object.Y != 40 {
		t.Fatalf("expected player to stop, got (%v, %v)", pp.Object.X, pp.Object.Y)
	}
}

func TestFireSpawnsAndExpiresBullet(t *testing.T) {
	w := NewWorld(openLevel(), 5, 10)
	w.AddPlayer("alice")
	pp, _ := w.Player("alice")
	place(pp, 50-playerSize/2, 50-playerSize/2) // centered at (50, 50)

	_ = w.ApplyInput("alice", messages.NewAngleInput(0))
	_ = w.ApplyInput("alice", messages.NewClickInput())
	w.Step()

	snap := w.Snapshot(1)
	if len(snap.State.Bullets) != 1 {
		t.Fatalf("expected one bullet, got %d", len(snap.State.Bullets))
	}
	b := snap.State.Bullets[0]
	if b.ID != 1 || b.Position.X != 80 || b.Position.Y != 50 {
		t.Fatalf("unexpected bullet %+v", b)
	}

	for i := 0; i < 5; i++ {
		w.Step()
	}
	if w.BulletCount() != 0 {
		t.Fatalf("expected bullet to leave the map, %d left", w.BulletCount())
	}
}

func TestFireRespectsCooldown(t *testing.T) {
	w := NewWorld(openLevel(), 5, 1)
	w.AddPlayer("alice")

	_ = w.ApplyInput("alice", messages.NewClickInput())
	w.Step()
	_ = w.ApplyInput("alice", messages.NewClickInput())
	w.Step()

	if w.BulletCount() != 1 {
		t.Fatalf("expected the second click to be ignored during cooldown, got %d bullets", w.BulletCount())
	}
}

func TestSnapshotShape(t *testing.T) {
	w := NewWorld(openLevel(), 5, 10)
	w.AddPlayer("bob")
	w.AddPlayer("alice")
	w.AddPlayer("bob")

	pp, _ := w.Player("alice")
	place(pp, 10, 20)
	_ = w.ApplyInput("alice", messages.NewAngleInput(float32(3*math.Pi/2)))

	snap := w.Snapshot(42)
	if snap.Type != messages.UpdateTypeState || snap.Timestamp != 42 {
		t.Fatalf("unexpected header %+v", snap)
	}
	if len(snap.State.Players) != 2 || snap.State.Players[0].ID != "bob" || snap.State.Players[1].ID != "alice" {
		t.Fatalf("expected players in join order, got %+v", snap.State.Players)
	}

	alice := snap.State.Players[1]
	if alice.Position.X != 10+playerSize/2 || alice.Position.Y != 20+playerSize/2 {
		t.Fatalf("expected center position, got %+v", alice.Position)
	}
	if math.Abs(float64(alice.AimAngle)+math.Pi/2) > 1e-5 {
		t.Fatalf("expected aim normalized to -Pi/2, got %v", alice.AimAngle)
	}

	w.RemovePlayer("bob")
	if snap := w.Snapshot(43); len(snap.State.Players) != 1 {
		t.Fatalf("expected bob to be gone, got %+v", snap.State.Players)
	}
}

func TestApplyInputUnknownPlayer(t *testing.T) {
	w := NewWorld(openLevel(), 5, 10)
	if err := w.ApplyInput("ghost", messages.NewClickInput()); err == nil {
		t.Fatalf("expected an error for an unknown player")
	}
}
