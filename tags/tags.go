package tags

import "github.com/yohamta/donburi"

var (
	Player      = donburi.NewTag().SetName("Player")
	LocalPlayer = donburi.NewTag().SetName("LocalPlayer")
	Bullet      = donburi.NewTag().SetName("Bullet")
	Wall        = donburi.NewTag().SetName("Wall")
)

// Resolv tags for the map space
const (
	ResolvWall     = "wall"
	ResolvViewport = "viewport"
)
