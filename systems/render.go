package systems

import (
	"math"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/fonts"
	"github.com/automoto/arena-mp/sim"
	"github.com/automoto/arena-mp/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	playerRadius = 16.0
	aimLength    = 30.0
	bulletRadius = 4.0
)

// Renderer adapts a draw function over the sim state to an ecs renderer.
func Renderer(s *sim.State, draw func(*sim.State, *ebiten.Image)) ecs.Renderer {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		draw(s, screen)
	}
}

func viewportOf(screen *ebiten.Image) sim.Viewport {
	b := screen.Bounds()
	return sim.Viewport{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func zoomOf(s *sim.State) float64 {
	cam, ok := s.Camera()
	if !ok || cam.Zoom <= 0 {
		return 1.0
	}
	return cam.Zoom
}

// DrawMap fills the background, the playable area and the walls in view.
func DrawMap(s *sim.State, screen *ebiten.Image) {
	screen.Fill(cfg.Colors.Background)

	m, ok := s.Map()
	if !ok {
		return
	}
	view := viewportOf(screen)
	zoom := float32(zoomOf(s))

	// Outline of the playable area
	minX, minY, maxX, maxY := m.Map.WorldRect()
	x0, y0, _ := s.WorldToScreen(view, minX, maxY)
	x1, y1, _ := s.WorldToScreen(view, maxX, minY)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, cfg.Colors.Wall, false)

	for _, w := range s.VisibleWalls(view) {
		px, py, pw, ph := w.PixelRect(m.Map.TileSize)
		// Server-axis top-left corner is the render-axis top-left at (x, -y).
		sx, sy, _ := s.WorldToScreen(view, px, -py)
		vector.FillRect(screen, float32(sx), float32(sy), float32(pw)*zoom, float32(ph)*zoom, cfg.Colors.Wall, false)
	}
}

// DrawPlayers draws every tracked player with an aim line and its id.
func DrawPlayers(s *sim.State, screen *ebiten.Image) {
	view := viewportOf(screen)
	zoom := float32(zoomOf(s))
	smallFont := fonts.Small.Get()

	tags.Player.Each(s.World, func(entry *donburi.Entry) {
		pose := components.Pose.Get(entry)
		sx, sy, _ := s.WorldToScreen(view, pose.X, pose.Y)

		c := cfg.Colors.Player
		if entry.HasComponent(tags.LocalPlayer) {
			c = cfg.Colors.LocalPlayer
		}
		vector.FillCircle(screen, float32(sx), float32(sy), playerRadius*zoom, c, true)

		// Rotation is counter-clockwise on the render axis; screen y grows down.
		ex := sx + math.Cos(pose.Rotation)*aimLength*float64(zoom)
		ey := sy - math.Sin(pose.Rotation)*aimLength*float64(zoom)
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, cfg.Colors.Aim, true)

		label := components.Player.Get(entry).UserID
		labelX := int(sx) - len(label)*3
		labelY := int(sy) - int(playerRadius*zoom) - 6
		text.Draw(screen, label, smallFont, labelX, labelY, cfg.Colors.HUDText)
	})
}

// DrawBullets draws every tracked projectile.
func DrawBullets(s *sim.State, screen *ebiten.Image) {
	view := viewportOf(screen)
	zoom := float32(zoomOf(s))

	tags.Bullet.Each(s.World, func(entry *donburi.Entry) {
		pose := components.Pose.Get(entry)
		sx, sy, _ := s.WorldToScreen(view, pose.X, pose.Y)
		vector.FillCircle(screen, float32(sx), float32(sy), bulletRadius*zoom, cfg.Colors.Bullet, true)
	})
}
