package archetypes

import (
	"slices"

	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Pose,
		components.InterpBuffer,
	)
	Bullet = newArchetype(
		tags.Bullet,
		components.Bullet,
		components.Pose,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
	Map = newArchetype(
		components.Map,
	)
	Camera = newArchetype(
		components.Camera,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus any extras.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(slices.Concat(a.components, cs)...))
}
