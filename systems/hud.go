package systems

import (
	"fmt"
	"time"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/fonts"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/sim"
	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hako/durafmt"
)

const (
	hudMargin     = 4
	hudLineHeight = 14
)

// HUDSource is implemented by transports that can report traffic and link state.
type HUDSource interface {
	Stats() network.Stats
	State() network.ClientState
	Err() error
}

// HUDLines formats the connection and sync status shown in the corner.
func HUDLines(s *sim.State, src HUDSource, now time.Time) []string {
	lines := []string{
		fmt.Sprintf("Online as %s - players %d, bullets %d", s.LocalID, s.PlayerCount(), s.BulletCount()),
		fmt.Sprintf("Snapshots %d applied, %d dropped (ts %d)", s.Stats.Applied, s.Stats.Dropped, s.Stats.LastTimestamp),
	}

	if src != nil {
		st := src.Stats()
		uptime := durafmt.Parse(now.Sub(st.Connected).Truncate(time.Second)).LimitFirstN(2).String()
		lines = append(lines,
			fmt.Sprintf("Traffic in %s / out %s", humanize.Bytes(st.BytesIn), humanize.Bytes(st.BytesOut)),
			fmt.Sprintf("Link %s for %s", src.State(), uptime),
		)
		if err := src.Err(); err != nil {
			lines = append(lines, fmt.Sprintf("Last error: %v", err))
		}
	}

	if cam, ok := s.Camera(); ok {
		lines = append(lines, fmt.Sprintf("Zoom %.2fx", cam.Zoom))
	}
	return lines
}

// DrawHUD renders the status lines in the top-left corner.
func DrawHUD(s *sim.State, src HUDSource, screen *ebiten.Image) {
	if !cfg.Debug.ShowHUD {
		return
	}
	face := fonts.Small.Get()
	for i, line := range HUDLines(s, src, time.Now()) {
		text.Draw(screen, line, face, hudMargin, hudMargin+hudLineHeight*(i+1)-2, cfg.Colors.HUDText)
	}
}
