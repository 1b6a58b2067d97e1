package core

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/automoto/arena-mp/shared/mapdata"
	"github.com/solarlune/resolv"
)

const (
	tagWall   = "wall"
	tagPlayer = "player"
	tagBullet = "bullet"
)

// ServerLevel holds the server's collision space for a map. The space origin
// is the map's top-left pixel, so space coordinates are world minus Origin.
type ServerLevel struct {
	Map              *mapdata.Map
	Space            *resolv.Space
	OriginX, OriginY float64
	MaxX, MaxY       float64

	spawns [][2]float64 // Centers of wall-free tiles, world units
}

// NewServerLevel builds a resolv.Space from a parsed map.
func NewServerLevel(m *mapdata.Map) *ServerLevel {
	minX, minY, maxX, maxY := m.PixelRect()
	space := resolv.NewSpace(int(maxX-minX), int(maxY-minY), m.TileSize, m.TileSize)

	blocked := make(map[[2]int]bool)
	for _, w := range m.Walls {
		x, y, width, height := w.PixelRect(m.TileSize)
		obj := resolv.NewObject(x-minX, y-minY, width, height, tagWall)
		obj.SetShape(resolv.NewRectangle(0, 0, width, height))
		space.Add(obj)

		for ty := w.Y; ty < w.Y+w.Height; ty++ {
			for tx := w.X; tx < w.X+w.Width; tx++ {
				blocked[[2]int{tx, ty}] = true
			}
		}
	}

	lvl := &ServerLevel{
		Map:     m,
		Space:   space,
		OriginX: minX,
		OriginY: minY,
		MaxX:    maxX,
		MaxY:    maxY,
	}

	ts := float64(m.TileSize)
	for ty := m.Top; ty < m.Bottom; ty++ {
		for tx := m.Left; tx < m.Right; tx++ {
			if !blocked[[2]int{tx, ty}] {
				lvl.spawns = append(lvl.spawns, [2]float64{(float64(tx) + 0.5) * ts, (float64(ty) + 0.5) * ts})
			}
		}
	}

	log.Printf("Loaded map: %d walls, %d free tiles, %.0fx%.0f px", len(m.Walls), len(lvl.spawns), maxX-minX, maxY-minY)
	return lvl
}

// LoadServerLevel reads a .json or .tmx map from fsys.
func LoadServerLevel(fsys fs.FS, name string) (*ServerLevel, error) {
	var (
		m   *mapdata.Map
		err error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".tmx":
		m, err = mapdata.LoadTMX(fsys, name)
	case ".json":
		m, err = mapdata.LoadJSON(fsys, name)
	default:
		return nil, fmt.Errorf("load level %s: unsupported map format", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	return NewServerLevel(m), nil
}

// SpawnPoint returns the n-th spawn position. Spawns cycle through the free
// tiles with a stride so consecutive players do not land next to each other.
func (l *ServerLevel) SpawnPoint(n int) (x, y float64) {
	if len(l.spawns) == 0 {
		return (l.OriginX + l.MaxX) / 2, (l.OriginY + l.MaxY) / 2
	}
	p := l.spawns[(n*7919+len(l.spawns)/2)%len(l.spawns)]
	return p[0], p[1]
}

// Contains reports whether a world point is inside the map.
func (l *ServerLevel) Contains(x, y float64) bool {
	return x >= l.OriginX && x < l.MaxX && y >= l.OriginY && y < l.MaxY
}
