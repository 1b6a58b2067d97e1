package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/arena-mp/shared/mapdata"
)

var (
	//go:embed all:data
	dataFS embed.FS
)

// MapPath is the default map asset inside FS.
const MapPath = "data/map.json"

// FS exposes the embedded asset tree.
func FS() fs.FS {
	return dataFS
}

// MustLoadMap loads the embedded default map and panics if it is broken,
// since the client cannot run without it.
func MustLoadMap() *mapdata.Map {
	m, err := mapdata.LoadJSON(dataFS, MapPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load map %s: %v", MapPath, err))
	}
	return m
}
