package sim

import (
	gomath "math"

	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/mapdata"
	"github.com/automoto/arena-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// Viewport is the screen size in pixels.
type Viewport struct {
	Width, Height float64
}

// ClampAxis keeps a view of half-width halfExtent centered at center inside
// [min, max]. If the view is wider than the range it is centered on the range.
func ClampAxis(center, halfExtent, min, max float64) float64 {
	lo, hi := min+halfExtent, max-halfExtent
	if lo > hi {
		return (min + max) / 2
	}
	return gomath.Max(lo, gomath.Min(hi, center))
}

// UpdateCamera advances any zoom transition, then centers the camera on the
// local player and clamps it so the visible area stays on the map.
// Without a local player the camera keeps its position but is still clamped;
// without a map it is not clamped.
func (s *State) UpdateCamera(view Viewport, dt float64) {
	cam, ok := s.Camera()
	if !ok {
		return
	}
	advanceZoom(cam, dt)

	x, y := cam.Position.X, cam.Position.Y
	if local, ok := s.LocalPlayer(); ok {
		pose := components.Pose.Get(local)
		x, y = pose.X, pose.Y
	}

	if m, ok := s.Map(); ok {
		zoom := zoomOf(cam)
		minX, minY, maxX, maxY := m.Map.WorldRect()
		x = ClampAxis(x, view.Width/zoom/2, minX, maxX)
		y = ClampAxis(y, view.Height/zoom/2, minY, maxY)
	}

	cam.Position = math.NewVec2(x, y)
}

func zoomOf(cam *components.CameraData) float64 {
	if cam.Zoom <= 0 {
		return 1.0
	}
	return cam.Zoom
}

func advanceZoom(cam *components.CameraData, dt float64) {
	if cam.ZoomTween == nil {
		return
	}
	z, done := cam.ZoomTween.Update(float32(dt))
	cam.Zoom = float64(z)
	if done {
		cam.Zoom = cam.ZoomTarget
		cam.ZoomTween = nil
	}
}

// SetZoom starts an eased transition to zoom, limited to the configured range.
func (s *State) SetZoom(zoom float64) {
	cam, ok := s.Camera()
	if !ok {
		return
	}
	target := gamemath.Clamp(zoom, config.Camera.MinZoom, config.Camera.MaxZoom)
	if target == cam.ZoomTarget && cam.ZoomTween != nil {
		return
	}
	cam.ZoomTarget = target
	if config.Camera.ZoomDuration <= 0 {
		cam.Zoom = target
		cam.ZoomTween = nil
		return
	}
	cam.ZoomTween = gween.New(float32(zoomOf(cam)), float32(target), config.Camera.ZoomDuration, ease.OutQuad)
}

// ZoomBy multiplies the zoom target by ZoomStep once per step (negative steps zoom out).
func (s *State) ZoomBy(steps int) {
	cam, ok := s.Camera()
	if !ok || steps == 0 {
		return
	}
	base := cam.ZoomTarget
	if base <= 0 {
		base = zoomOf(cam)
	}
	s.SetZoom(base * gomath.Pow(config.Camera.ZoomStep, float64(steps)))
}

// ScreenToWorld projects a screen pixel to render-axis world coordinates.
func (s *State) ScreenToWorld(view Viewport, sx, sy float64) (wx, wy float64, ok bool) {
	cam, ok := s.Camera()
	if !ok {
		return 0, 0, false
	}
	zoom := zoomOf(cam)
	wx = cam.Position.X + (sx-view.Width/2)/zoom
	wy = cam.Position.Y - (sy-view.Height/2)/zoom
	return wx, wy, true
}

// WorldToScreen projects render-axis world coordinates to a screen pixel.
func (s *State) WorldToScreen(view Viewport, wx, wy float64) (sx, sy float64, ok bool) {
	cam, ok := s.Camera()
	if !ok {
		return 0, 0, false
	}
	zoom := zoomOf(cam)
	sx = (wx-cam.Position.X)*zoom + view.Width/2
	sy = (cam.Position.Y-wy)*zoom + view.Height/2
	return sx, sy, true
}

// LoadMap replaces the current map. Walls are indexed in a resolv space on
// the server axis so the renderer can cull them against the viewport.
func (s *State) LoadMap(m *mapdata.Map) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.unloadMap()

	minX, minY, maxX, maxY := m.PixelRect()
	cell := m.TileSize
	space := resolv.NewSpace(int(maxX-minX), int(maxY-minY), cell, cell)

	for _, w := range m.Walls {
		x, y, width, height := w.PixelRect(m.TileSize)
		obj := resolv.NewObject(x-minX, y-minY, width, height, tags.ResolvWall)
		obj.SetShape(resolv.NewRectangle(0, 0, width, height))
		obj.Data = w
		space.Add(obj)

		entry := archetypes.Wall.Spawn(s.World)
		components.Object.SetValue(entry, components.ObjectData{Object: obj})
	}

	view := resolv.NewObject(0, 0, 1, 1, tags.ResolvViewport)
	space.Add(view)

	entry := archetypes.Map.Spawn(s.World)
	components.Map.SetValue(entry, components.MapData{
		Map:     m,
		Space:   space,
		OriginX: minX,
		OriginY: minY,
		View:    view,
	})
	return nil
}

func (s *State) unloadMap() {
	var stale []donburi.Entity
	components.Map.Each(s.World, func(entry *donburi.Entry) {
		stale = append(stale, entry.Entity())
	})
	tags.Wall.Each(s.World, func(entry *donburi.Entry) {
		stale = append(stale, entry.Entity())
	})
	for _, e := range stale {
		s.World.Remove(e)
	}
}

// VisibleWalls returns the walls overlapping the current view. Culling is at
// space-cell granularity, so a few walls just off screen may be included.
func (s *State) VisibleWalls(view Viewport) []mapdata.Wall {
	m, ok := s.Map()
	if !ok {
		return nil
	}
	cam, ok := s.Camera()
	if !ok {
		return nil
	}

	zoom := zoomOf(cam)
	w, h := view.Width/zoom, view.Height/zoom
	probe := m.View
	probe.X = cam.Position.X - w/2 - m.OriginX
	probe.Y = -cam.Position.Y - h/2 - m.OriginY
	probe.W, probe.H = w, h
	probe.Update()

	check := probe.Check(0, 0, tags.ResolvWall)
	if check == nil {
		return nil
	}

	seen := make(map[*resolv.Object]bool, len(check.Objects))
	walls := make([]mapdata.Wall, 0, len(check.Objects))
	for _, obj := range check.Objects {
		if seen[obj] {
			continue
		}
		seen[obj] = true
		if wall, ok := obj.Data.(mapdata.Wall); ok {
			walls = append(walls, wall)
		}
	}
	return walls
}
