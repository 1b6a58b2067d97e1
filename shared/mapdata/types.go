// Package mapdata loads the static map the camera is bounded by. It is shared
// between client and dev server and has no dependencies on ebitengine or donburi.
package mapdata

// Bounds is the playable rectangle in tile units, server axis (y grows downward).
type Bounds struct {
	TileSize int `json:"tileSize"`
	Top      int `json:"top"`
	Left     int `json:"left"`
	Bottom   int `json:"bottom"`
	Right    int `json:"right"`
}

// Wall is a solid block in tile units.
type Wall struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Map is the full asset. Only Bounds matters to the camera; walls are drawn
// and used for collision on the dev server.
type Map struct {
	Bounds
	Walls []Wall `json:"walls"`
}

// WorldRect returns the bounds in world units on the render axis (y grows
// upward), so minY is the negated bottom edge.
func (b Bounds) WorldRect() (minX, minY, maxX, maxY float64) {
	ts := float64(b.TileSize)
	return ts * float64(b.Left), -ts * float64(b.Bottom), ts * float64(b.Right), -ts * float64(b.Top)
}

// PixelRect returns the bounds in world units on the server axis.
func (b Bounds) PixelRect() (minX, minY, maxX, maxY float64) {
	ts := float64(b.TileSize)
	return ts * float64(b.Left), ts * float64(b.Top), ts * float64(b.Right), ts * float64(b.Bottom)
}

// PixelRect returns the wall rectangle in server-axis world units.
func (w Wall) PixelRect(tileSize int) (x, y, width, height float64) {
	ts := float64(tileSize)
	return ts * float64(w.X), ts * float64(w.Y), ts * float64(w.Width), ts * float64(w.Height)
}
