package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type CameraData struct {
	Position math.Vec2 // Center of the view, render axis
	Zoom     float64   // Screen pixels per world unit

	ZoomTarget float64
	ZoomTween  *gween.Tween // Active eased zoom change, nil when settled
}

var Camera = donburi.NewComponentType[CameraData]()
