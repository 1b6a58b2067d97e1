package sim

import (
	"testing"

	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/mapdata"
)

func TestClampAxis(t *testing.T) {
	tests := []struct {
		name               string
		center, half       float64
		min, max, expected float64
	}{
		{"inside", 500, 100, 0, 1000, 500},
		{"below min", 10, 100, 0, 1000, 100},
		{"above max", 990, 100, 0, 1000, 900},
		{"exact fit", 300, 500, 0, 1000, 500},
		{"map narrower than view", 10, 100, 0, 100, 50},
		{"negative range", -10, 50, -1000, 0, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampAxis(tt.center, tt.half, tt.min, tt.max); got != tt.expected {
				t.Fatalf("ClampAxis(%v, %v, %v, %v) = %v, want %v", tt.center, tt.half, tt.min, tt.max, got, tt.expected)
			}
		})
	}
}

func testMap() *mapdata.Map {
	return &mapdata.Map{
		// World rect: x in [0, 1000], y in [-1000, 0]
		Bounds: mapdata.Bounds{TileSize: 10, Top: 0, Left: 0, Bottom: 100, Right: 100},
		Walls: []mapdata.Wall{
			{X: 0, Y: 0, Width: 2, Height: 2},
			{X: 90, Y: 90, Width: 5, Height: 5},
		},
	}
}

func TestUpdateCameraClamps(t *testing.T) {
	view := Viewport{Width: 200, Height: 100}

	tests := []struct {
		name string
		x, y float32 // Wire position of the local player
		camX float64
		camY float64
	}{
		{"free move", 500, 500, 500, -500},
		{"top left corner", 10, 5, 100, -50},
		{"bottom right corner", 995, 990, 900, -950},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState("alice")
			if err := s.LoadMap(testMap()); err != nil {
				t.Fatalf("load map: %v", err)
			}
			s.ApplySnapshot(snapshot(1, players(player("alice", tt.x, tt.y, 0))))
			s.UpdateCamera(view, tick)

			cam, _ := s.Camera()
			if !near(cam.Position.X, tt.camX) || !near(cam.Position.Y, tt.camY) {
				t.Fatalf("expected camera (%v, %v), got (%v, %v)", tt.camX, tt.camY, cam.Position.X, cam.Position.Y)
			}
		})
	}
}

func TestUpdateCameraWithoutMapFollowsPlayer(t *testing.T) {
	s := NewState("alice")
	s.ApplySnapshot(snapshot(1, players(player("alice", -40, 30, 0))))
	s.UpdateCamera(Viewport{Width: 200, Height: 100}, tick)

	cam, _ := s.Camera()
	if cam.Position.X != -40 || cam.Position.Y != -30 {
		t.Fatalf("expected camera on player, got %+v", cam.Position)
	}
}

func TestUpdateCameraWithoutLocalPlayerStays(t *testing.T) {
	s := NewState("alice")
	s.ApplySnapshot(snapshot(1, players(player("bob", 400, 400, 0))))
	s.UpdateCamera(Viewport{Width: 200, Height: 100}, tick)

	cam, _ := s.Camera()
	if cam.Position.X != 0 || cam.Position.Y != 0 {
		t.Fatalf("expected camera to stay put, got %+v", cam.Position)
	}
}

func TestUpdateCameraWithoutLocalPlayerStillClamps(t *testing.T) {
	s := NewState("alice")
	if err := s.LoadMap(testMap()); err != nil {
		t.Fatalf("load map: %v", err)
	}
	s.UpdateCamera(Viewport{Width: 200, Height: 100}, tick)

	cam, _ := s.Camera()
	if cam.Position.X != 100 || cam.Position.Y != -50 {
		t.Fatalf("expected camera clamped into the map at (100, -50), got %+v", cam.Position)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	s := NewState("alice")
	view := Viewport{Width: 200, Height: 100}
	s.ApplySnapshot(snapshot(1, players(player("alice", 50, 60, 0))))
	s.UpdateCamera(view, tick)

	wx, wy, ok := s.ScreenToWorld(view, 100, 50)
	if !ok || wx != 50 || wy != -60 {
		t.Fatalf("expected screen center to map to the camera, got (%v, %v)", wx, wy)
	}

	// Screen y grows down, world y grows up.
	_, wy, _ = s.ScreenToWorld(view, 100, 0)
	if wy <= -60 {
		t.Fatalf("expected top of screen to be above the camera, got %v", wy)
	}

	sx, sy, _ := s.WorldToScreen(view, 70, -45)
	bx, by, _ := s.ScreenToWorld(view, sx, sy)
	if !near(bx, 70) || !near(by, -45) {
		t.Fatalf("round trip drifted: (%v, %v)", bx, by)
	}
}

func TestZoomTweenSettles(t *testing.T) {
	s := NewState("alice")
	s.ZoomBy(1)

	cam, _ := s.Camera()
	want := config.Camera.Zoom * config.Camera.ZoomStep
	if !near(cam.ZoomTarget, want) {
		t.Fatalf("expected target %v, got %v", want, cam.ZoomTarget)
	}

	view := Viewport{Width: 200, Height: 100}
	s.UpdateCamera(view, tick)
	if cam.Zoom <= config.Camera.Zoom || cam.Zoom >= want {
		t.Fatalf("expected zoom mid-transition, got %v", cam.Zoom)
	}

	for i := 0; i < 120; i++ {
		s.UpdateCamera(view, tick)
	}
	if cam.Zoom != want || cam.ZoomTween != nil {
		t.Fatalf("expected zoom to settle at %v, got %v", want, cam.Zoom)
	}

	s.SetZoom(100)
	if cam.ZoomTarget != config.Camera.MaxZoom {
		t.Fatalf("expected zoom to be capped at %v, got %v", config.Camera.MaxZoom, cam.ZoomTarget)
	}
}

func TestVisibleWallsCulls(t *testing.T) {
	s := NewState("alice")
	if err := s.LoadMap(testMap()); err != nil {
		t.Fatalf("load map: %v", err)
	}
	view := Viewport{Width: 200, Height: 100}

	// Camera clamps to the top-left corner: only the first wall is near.
	s.ApplySnapshot(snapshot(1, players(player("alice", 0, 0, 0))))
	s.UpdateCamera(view, tick)
	walls := s.VisibleWalls(view)
	if len(walls) != 1 || walls[0].X != 0 {
		t.Fatalf("expected only the top-left wall, got %+v", walls)
	}

	// Bottom-right corner: only the second wall.
	s.ApplySnapshot(snapshot(2, players(player("alice", 1000, 1000, 0))))
	s.Params.Lambda = 1000
	s.Interpolate(tick)
	s.UpdateCamera(view, tick)
	walls = s.VisibleWalls(view)
	if len(walls) != 1 || walls[0].X != 90 {
		t.Fatalf("expected only the bottom-right wall, got %+v", walls)
	}
}

func TestLoadMapReplacesPrevious(t *testing.T) {
	s := NewState("alice")
	if err := s.LoadMap(testMap()); err != nil {
		t.Fatalf("load map: %v", err)
	}
	if err := s.LoadMap(testMap()); err != nil {
		t.Fatalf("reload map: %v", err)
	}

	if err := s.LoadMap(&mapdata.Map{}); err == nil {
		t.Fatalf("expected invalid bounds to be rejected")
	}
	if _, ok := s.Map(); !ok {
		t.Fatalf("expected the last valid map to remain loaded")
	}
}
