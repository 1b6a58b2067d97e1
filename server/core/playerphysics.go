package core

import (
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/solarlune/resolv"
)

const (
	playerSize   = 28.0
	bulletSize   = 6.0
	bulletTTL    = 90 // ticks
	fireCooldown = 6  // ticks between shots
)

// PlayerPhysics holds per-player state on the server. Object is positioned
// in level space (world minus level origin) by its top-left corner.
type PlayerPhysics struct {
	ID     string
	Object *resolv.Object

	// Latest input, written by ApplyInput and read by Step
	Direction messages.Direction
	Aim       float32
	Fire      bool

	cooldown int
}

func newPlayerPhysics(level *ServerLevel, id string, x, y float64) *PlayerPhysics {
	obj := resolv.NewObject(x-level.OriginX-playerSize/2, y-level.OriginY-playerSize/2, playerSize, playerSize, tagPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, playerSize, playerSize))
	level.Space.Add(obj)

	return &PlayerPhysics{
		ID:     id,
		Object: obj,
	}
}

func removePlayerPhysics(level *ServerLevel, pp *PlayerPhysics) {
	level.Space.Remove(pp.Object)
}

// Center returns the player's world position.
func (pp *PlayerPhysics) Center(level *ServerLevel) (x, y float64) {
	return pp.Object.X + level.OriginX + playerSize/2, pp.Object.Y + level.OriginY + playerSize/2
}

// BulletPhysics is a projectile in flight.
type BulletPhysics struct {
	ID     int32
	Owner  string
	Object *resolv.Object
	VX, VY float64
	TTL    int
}

func newBulletPhysics(level *ServerLevel, id int32, owner string, x, y, vx, vy float64) *BulletPhysics {
	obj := resolv.NewObject(x-level.OriginX-bulletSize/2, y-level.OriginY-bulletSize/2, bulletSize, bulletSize, tagBullet)
	obj.SetShape(resolv.NewRectangle(0, 0, bulletSize, bulletSize))
	level.Space.Add(obj)

	return &BulletPhysics{ID: id, Owner: owner, Object: obj, VX: vx, VY: vy, TTL: bulletTTL}
}

func removeBulletPhysics(level *ServerLevel, bp *BulletPhysics) {
	level.Space.Remove(bp.Object)
}

func (bp *BulletPhysics) Center(level *ServerLevel) (x, y float64) {
	return bp.Object.X + level.OriginX + bulletSize/2, bp.Object.Y + level.OriginY + bulletSize/2
}
