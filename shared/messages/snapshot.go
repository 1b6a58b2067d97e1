package messages

// UpdateTypeState is the snapshot type the dev server stamps on full state updates.
// Clients apply every decoded snapshot whatever its type.
const UpdateTypeState uint64 = 0

// Position is a point in server coordinates; y grows downward.
type Position struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// PlayerState is one player entry of a snapshot.
type PlayerState struct {
	ID       string   `json:"id" jsonschema:"description=Stable user id of the player"`
	Position Position `json:"position"`
	AimAngle float32  `json:"aimAngle" jsonschema:"description=Aim angle in radians, server y-down convention"`
}

// BulletState is one projectile entry of a snapshot.
type BulletState struct {
	ID       int32    `json:"id"`
	Position Position `json:"position"`
}

// GameState lists every live player and projectile.
type GameState struct {
	Players []PlayerState `json:"players"`
	Bullets []BulletState `json:"bullets"`
}

// Snapshot is one authoritative world update. It is immutable once decoded.
type Snapshot struct {
	Type      uint64    `json:"type"`
	Timestamp uint64    `json:"ts" jsonschema:"description=Server timestamp in milliseconds"`
	State     GameState `json:"state"`
}
