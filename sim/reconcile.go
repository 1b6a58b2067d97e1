package sim

import (
	"log"

	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
)

// ApplySnapshot reconciles the world against one authoritative snapshot.
// Anything tracked but absent from the snapshot is destroyed before anything
// new is created. Known players get one new interpolation target; new players
// and all projectiles take the snapshot pose directly. If an id appears more
// than once, its last entry wins. A nil snapshot is a no-op.
func (s *State) ApplySnapshot(snap *messages.Snapshot) {
	if snap == nil {
		return
	}

	players, playerIDs := latestByID(snap.State.Players, func(p messages.PlayerState) string { return p.ID })
	bullets, bulletIDs := latestByID(snap.State.Bullets, func(b messages.BulletState) int32 { return b.ID })

	for id, e := range s.players {
		if _, ok := playerIDs[id]; !ok {
			s.despawn(e, "player", id)
			delete(s.players, id)
		}
	}
	for id, e := range s.bullets {
		if _, ok := bulletIDs[id]; !ok {
			s.despawn(e, "bullet", id)
			delete(s.bullets, id)
		}
	}

	for _, p := range players {
		target := playerPose(p)
		if entry, ok := s.Player(p.ID); ok {
			components.InterpBuffer.Get(entry).Push(target)
			continue
		}
		s.players[p.ID] = s.spawnPlayer(p.ID, target)
	}

	for _, b := range bullets {
		pose := components.PoseData{
			X: float64(b.Position.X),
			Y: -float64(b.Position.Y),
		}
		if entry, ok := s.Bullet(b.ID); ok {
			components.Pose.SetValue(entry, pose)
			continue
		}
		s.bullets[b.ID] = s.spawnBullet(b.ID, pose)
	}

	s.Stats.Applied++
	s.Stats.LastTimestamp = snap.Timestamp
}

// playerPose converts a wire player to a render-axis pose.
func playerPose(p messages.PlayerState) components.PoseData {
	return components.PoseData{
		X:        float64(p.Position.X),
		Y:        -float64(p.Position.Y),
		Rotation: -float64(p.AimAngle),
	}
}

func (s *State) spawnPlayer(id string, pose components.PoseData) donburi.Entity {
	var entry *donburi.Entry
	if id == s.LocalID {
		entry = archetypes.Player.Spawn(s.World, tags.LocalPlayer)
	} else {
		entry = archetypes.Player.Spawn(s.World)
	}
	components.Player.SetValue(entry, components.PlayerData{UserID: id})
	components.Pose.SetValue(entry, pose)

	s.Stats.Spawned++
	if config.Debug.LogSync {
		log.Printf("[sim] spawn player %s at (%.1f, %.1f) local=%v", id, pose.X, pose.Y, id == s.LocalID)
	}
	return entry.Entity()
}

func (s *State) spawnBullet(id int32, pose components.PoseData) donburi.Entity {
	entry := archetypes.Bullet.Spawn(s.World)
	components.Bullet.SetValue(entry, components.BulletData{ID: id})
	components.Pose.SetValue(entry, pose)

	s.Stats.Spawned++
	if config.Debug.LogSync {
		log.Printf("[sim] spawn bullet %d at (%.1f, %.1f)", id, pose.X, pose.Y)
	}
	return entry.Entity()
}

func (s *State) despawn(e donburi.Entity, kind string, id any) {
	if s.World.Valid(e) {
		s.World.Remove(e)
	}
	s.Stats.Despawned++
	if config.Debug.LogSync {
		log.Printf("[sim] despawn %s %v", kind, id)
	}
}

// latestByID collapses repeated ids to their last entry while keeping the
// order in which each id first appeared.
func latestByID[K comparable, T any](in []T, key func(T) K) ([]T, map[K]int) {
	index := make(map[K]int, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		k := key(v)
		if i, ok := index[k]; ok {
			out[i] = v
			continue
		}
		index[k] = len(out)
		out = append(out, v)
	}
	return out, index
}
