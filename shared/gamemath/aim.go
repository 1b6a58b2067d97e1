package gamemath

import "math"

// AimAngle returns the angle from (fromX, fromY) to (toX, toY) where both
// points are on the render axis (y up), expressed on the server axis (y down).
// A target straight to the right is 0 and one straight above is -Pi/2.
func AimAngle(fromX, fromY, toX, toY float64) float64 {
	return math.Atan2(fromY-toY, toX-fromX)
}

// Direction returns the unit vector for an angle on the server axis.
func Direction(angle float64) (dx, dy float64) {
	return math.Cos(angle), math.Sin(angle)
}
