// Package sim is the client's state-synchronization core: it reconciles server
// snapshots into a donburi world, smooths player motion, keeps the camera on
// the map and turns input into outbound messages. It runs single-threaded
// inside the game tick and must not import ebiten.
package sim

import (
	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// Params tunes interpolation.
type Params struct {
	Lambda  float64
	Epsilon float64
}

func DefaultParams() Params {
	return Params{
		Lambda:  config.Interp.Lambda,
		Epsilon: config.Interp.Epsilon,
	}
}

// Stats counts what the pipeline has done so far.
type Stats struct {
	Applied       uint64 // Snapshots reconciled
	Dropped       uint64 // Frames that failed to decode
	ReadFailures  uint64
	Spawned       uint64
	Despawned     uint64
	LastTimestamp uint64 // ts of the last applied snapshot
}

// State is the client world plus the id indexes that tie server ids to entities.
type State struct {
	World   donburi.World
	LocalID string
	Params  Params
	Stats   Stats

	players map[string]donburi.Entity
	bullets map[int32]donburi.Entity
}

// NewState creates an empty world with a camera. localID is the user id the
// server uses for this client; the matching player gets tags.LocalPlayer.
func NewState(localID string) *State {
	s := &State{
		World:   donburi.NewWorld(),
		LocalID: localID,
		Params:  DefaultParams(),
		players: make(map[string]donburi.Entity),
		bullets: make(map[int32]donburi.Entity),
	}

	cam := archetypes.Camera.Spawn(s.World)
	components.Camera.SetValue(cam, components.CameraData{
		Position:   math.NewVec2(0, 0),
		Zoom:       config.Camera.Zoom,
		ZoomTarget: config.Camera.Zoom,
	})
	return s
}

// LocalPlayer returns the entity tagged as this client's player.
func (s *State) LocalPlayer() (*donburi.Entry, bool) {
	return tags.LocalPlayer.First(s.World)
}

// Player returns the tracked player with the given server id.
func (s *State) Player(id string) (*donburi.Entry, bool) {
	e, ok := s.players[id]
	return s.entry(e, ok)
}

// Bullet returns the tracked projectile with the given server id.
func (s *State) Bullet(id int32) (*donburi.Entry, bool) {
	e, ok := s.bullets[id]
	return s.entry(e, ok)
}

func (s *State) entry(e donburi.Entity, ok bool) (*donburi.Entry, bool) {
	if !ok || !s.World.Valid(e) {
		return nil, false
	}
	return s.World.Entry(e), true
}

func (s *State) PlayerCount() int { return len(s.players) }
func (s *State) BulletCount() int { return len(s.bullets) }

// Camera returns the camera singleton.
func (s *State) Camera() (*components.CameraData, bool) {
	entry, ok := components.Camera.First(s.World)
	if !ok {
		return nil, false
	}
	return components.Camera.Get(entry), true
}

// Map returns the loaded map, if any.
func (s *State) Map() (*components.MapData, bool) {
	entry, ok := components.Map.First(s.World)
	if !ok {
		return nil, false
	}
	m := components.Map.Get(entry)
	if m.Map == nil {
		return nil, false
	}
	return m, true
}
