package components

import (
	"github.com/automoto/arena-mp/shared/mapdata"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// MapData holds the static map. Space indexes wall objects on the server
// axis (y grows downward), shifted so the map's top-left corner is the origin.
type MapData struct {
	Map   *mapdata.Map
	Space *resolv.Space

	OriginX, OriginY float64       // Server-axis position of the space origin
	View             *resolv.Object // Probe used to cull walls against the viewport
}

var Map = donburi.NewComponentType[MapData]()
