package core

import (
	"fmt"
	"log"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
)

// World is the dev server's authoritative simulation. It is not safe for
// concurrent use; the game loop owns it.
type World struct {
	level *ServerLevel

	moveSpeed   float64 // world units per tick
	bulletSpeed float64 // world units per tick

	players      map[string]*PlayerPhysics
	playerOrder  []string
	bullets      map[int32]*BulletPhysics
	bulletOrder  []int32
	nextBulletID int32
	spawned      int
	tick         uint64
}

func NewWorld(level *ServerLevel, moveSpeed, bulletSpeed float64) *World {
	return &World{
		level:       level,
		moveSpeed:   moveSpeed,
		bulletSpeed: bulletSpeed,
		players:     make(map[string]*PlayerPhysics),
		bullets:     make(map[int32]*BulletPhysics),
	}
}

// AddPlayer spawns id. Adding an existing id is a no-op.
func (w *World) AddPlayer(id string) {
	if _, ok := w.players[id]; ok {
		return
	}
	x, y := w.level.SpawnPoint(w.spawned)
	w.spawned++
	w.players[id] = newPlayerPhysics(w.level, id, x, y)
	w.playerOrder = append(w.playerOrder, id)
	log.Printf("Player %s spawned at (%.0f, %.0f)", id, x, y)
}

func (w *World) RemovePlayer(id string) {
	pp, ok := w.players[id]
	if !ok {
		return
	}
	removePlayerPhysics(w.level, pp)
	delete(w.players, id)
	w.playerOrder = removeValue(w.playerOrder, id)
	log.Printf("Player %s removed", id)
}

func (w *World) PlayerCount() int { return len(w.players) }
func (w *World) BulletCount() int { return len(w.bullets) }

// Player returns the physics state for id.
func (w *World) Player(id string) (*PlayerPhysics, bool) {
	pp, ok := w.players[id]
	return pp, ok
}

// ApplyInput records a decoded input message for id.
func (w *World) ApplyInput(id string, input any) error {
	pp, ok := w.players[id]
	if !ok {
		return fmt.Errorf("input for unknown player %s", id)
	}
	switch msg := input.(type) {
	case messages.MoveInput:
		pp.Direction = msg.Direction
	case messages.AngleInput:
		pp.Aim = msg.Angle
	case messages.ClickInput:
		pp.Fire = true
	default:
		return fmt.Errorf("unsupported input %T", input)
	}
	return nil
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	w.tick++

	for _, id := range w.playerOrder {
		pp := w.players[id]
		w.stepPlayer(pp)
		if pp.cooldown > 0 {
			pp.cooldown--
		}
		if pp.Fire {
			pp.Fire = false
			if pp.cooldown == 0 {
				w.fire(pp)
				pp.cooldown = fireCooldown
			}
		}
	}

	var dead []int32
	for _, id := range w.bulletOrder {
		if !w.stepBullet(w.bullets[id]) {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		removeBulletPhysics(w.level, w.bullets[id])
		delete(w.bullets, id)
		w.bulletOrder = removeValue(w.bulletOrder, id)
	}
}

func (w *World) stepPlayer(pp *PlayerPhysics) {
	var dx, dy float64
	switch pp.Direction {
	case messages.DirectionUp:
		dy = -w.moveSpeed
	case messages.DirectionDown:
		dy = w.moveSpeed
	case messages.DirectionLeft:
		dx = -w.moveSpeed
	case messages.DirectionRight:
		dx = w.moveSpeed
	default:
		return
	}

	obj := pp.Object
	if dx != 0 {
		if check := obj.Check(dx, 0, tagWall); check != nil {
			if walls := check.ObjectsByTags(tagWall); len(walls) > 0 {
				dx = check.ContactWithObject(walls[0]).X()
			}
		}
		obj.X += dx
		obj.Update()
	}
	if dy != 0 {
		if check := obj.Check(0, dy, tagWall); check != nil {
			if walls := check.ObjectsByTags(tagWall); len(walls) > 0 {
				dy = check.ContactWithObject(walls[0]).Y()
			}
		}
		obj.Y += dy
	}

	// Keep the player inside the map even where it has no border walls.
	width := w.level.MaxX - w.level.OriginX
	height := w.level.MaxY - w.level.OriginY
	obj.X = gamemath.Clamp(obj.X, 0, width-playerSize)
	obj.Y = gamemath.Clamp(obj.Y, 0, height-playerSize)
	obj.Update()
}

func (w *World) fire(pp *PlayerPhysics) {
	x, y := pp.Center(w.level)
	dx, dy := gamemath.Direction(float64(pp.Aim))

	w.nextBulletID++
	id := w.nextBulletID
	muzzle := playerSize/2 + bulletSize
	bp := newBulletPhysics(w.level, id, pp.ID, x+dx*muzzle, y+dy*muzzle, dx*w.bulletSpeed, dy*w.bulletSpeed)
	w.bullets[id] = bp
	w.bulletOrder = append(w.bulletOrder, id)
}

// stepBullet moves a bullet and reports whether it is still alive.
func (w *World) stepBullet(bp *BulletPhysics) bool {
	bp.TTL--
	if bp.TTL <= 0 {
		return false
	}
	if check := bp.Object.Check(bp.VX, bp.VY, tagWall); check != nil {
		return false
	}
	bp.Object.X += bp.VX
	bp.Object.Y += bp.VY
	bp.Object.Update()

	x, y := bp.Center(w.level)
	return w.level.Contains(x, y)
}

// Snapshot returns the full world state in wire form.
func (w *World) Snapshot(ts uint64) messages.Snapshot {
	snap := messages.Snapshot{
		Type:      messages.UpdateTypeState,
		Timestamp: ts,
		State: messages.GameState{
			Players: make([]messages.PlayerState, 0, len(w.players)),
			Bullets: make([]messages.BulletState, 0, len(w.bullets)),
		},
	}
	for _, id := range w.playerOrder {
		pp := w.players[id]
		x, y := pp.Center(w.level)
		snap.State.Players = append(snap.State.Players, messages.PlayerState{
			ID:       id,
			Position: messages.Position{X: float32(x), Y: float32(y)},
			AimAngle: float32(gamemath.NormalizeAngle(float64(pp.Aim))),
		})
	}
	for _, id := range w.bulletOrder {
		bp := w.bullets[id]
		x, y := bp.Center(w.level)
		snap.State.Bullets = append(snap.State.Bullets, messages.BulletState{
			ID:       id,
			Position: messages.Position{X: float32(x), Y: float32(y)},
		})
	}
	return snap
}

func removeValue[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
