package components

import "github.com/yohamta/donburi"

// PoseData is a rendered transform on the render axis (y grows upward).
// Rotation is in radians, counter-clockwise.
type PoseData struct {
	X, Y     float64
	Rotation float64
}

var Pose = donburi.NewComponentType[PoseData]()
