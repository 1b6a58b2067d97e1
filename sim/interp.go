package sim

import (
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Interpolate moves every tracked player a step toward the head of its target
// queue. The step factor is Lambda*dt clamped to [0, 1]. Once a player is
// within Epsilon of its head target it snaps there and the target is popped;
// at most one target is consumed per call. Players with no targets hold still.
func (s *State) Interpolate(dt float64) {
	t := gamemath.Clamp(s.Params.Lambda*dt, 0, 1)

	components.InterpBuffer.Each(s.World, func(entry *donburi.Entry) {
		buf := components.InterpBuffer.Get(entry)
		head, ok := buf.Head()
		if !ok {
			return
		}

		pose := components.Pose.Get(entry)
		pose.X = gamemath.Lerp(pose.X, head.X, t)
		pose.Y = gamemath.Lerp(pose.Y, head.Y, t)
		pose.Rotation = gamemath.LerpAngle(pose.Rotation, head.Rotation, t)

		if gamemath.Distance(pose.X, pose.Y, head.X, head.Y) < s.Params.Epsilon {
			*pose = head
			buf.Pop()
		}
	})
}
