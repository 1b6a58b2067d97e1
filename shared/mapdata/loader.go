package mapdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/lafriks/go-tiled"
)

// WallsLayer is the Tiled object group whose rectangles become walls.
const WallsLayer = "walls"

var ErrInvalidBounds = errors.New("invalid map bounds")

// Validate checks that the bounds describe a non-empty rectangle.
func (b Bounds) Validate() error {
	if b.TileSize <= 0 {
		return fmt.Errorf("%w: tileSize %d", ErrInvalidBounds, b.TileSize)
	}
	if b.Right <= b.Left {
		return fmt.Errorf("%w: left %d, right %d", ErrInvalidBounds, b.Left, b.Right)
	}
	if b.Bottom <= b.Top {
		return fmt.Errorf("%w: top %d, bottom %d", ErrInvalidBounds, b.Top, b.Bottom)
	}
	return nil
}

// Parse decodes a JSON map asset.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadJSON reads a JSON map asset from fsys. It takes an fs.FS so callers can
// pass embed.FS (client) or os.DirFS (dev server).
func LoadJSON(fsys fs.FS, path string) (*Map, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadTMX builds a Map from a Tiled file. The whole tile grid is the playable
// area, and rectangles in the "walls" object group become walls (snapped to
// whole tiles).
func LoadTMX(fsys fs.FS, tmxPath string) (*Map, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("load TMX %s: non-square tiles %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	m := &Map{
		Bounds: Bounds{
			TileSize: levelMap.TileWidth,
			Top:      0,
			Left:     0,
			Bottom:   levelMap.Height,
			Right:    levelMap.Width,
		},
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	ts := float64(levelMap.TileWidth)
	for _, og := range levelMap.ObjectGroups {
		if og.Name != WallsLayer {
			continue
		}
		for _, o := range og.Objects {
			x := int(math.Floor(o.X / ts))
			y := int(math.Floor(o.Y / ts))
			w := int(math.Ceil((o.X+o.Width)/ts)) - x
			h := int(math.Ceil((o.Y+o.Height)/ts)) - y
			if w <= 0 || h <= 0 {
				continue
			}
			m.Walls = append(m.Walls, Wall{X: x, Y: y, Width: w, Height: h})
		}
	}

	return m, nil
}
