// Package config holds client tunables. It must stay free of ebiten imports so
// the headless sim and network packages (and their tests) can read it.
package config

import (
	"image/color"
	"time"
)

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// NetConfig contains connection and transport configuration
type NetConfig struct {
	URL    string // Websocket endpoint, e.g. ws://localhost:7373/connect
	RoomID string // Room (stateId) sent in the join handshake

	DialTimeout  time.Duration
	WriteTimeout time.Duration
	ReadLimit    int64 // Max inbound frame size in bytes

	InboundBuffer  int // Frames buffered between the reader goroutine and the tick
	OutboundBuffer int // Frames buffered between the tick and the writer goroutine

	// Snapshots applied per tick. Anything beyond stays queued for the next tick.
	MaxSnapshotsPerTick int

	// Minimum spacing between repeated transport warnings in the log
	WarnInterval time.Duration
	WarnBurst    int
}

// InterpConfig contains snapshot smoothing configuration
type InterpConfig struct {
	Lambda  float64 // Convergence rate; factor per tick is min(Lambda*dt, 1)
	Epsilon float64 // World units within which a target counts as reached
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	Zoom         float64 // Initial zoom (1.0 = one world unit per pixel)
	ZoomStep     float64 // Multiplier applied per zoom key press
	MinZoom      float64
	MaxZoom      float64
	ZoomDuration float32 // Seconds for an eased zoom transition
}

// DebugConfig contains debug toggles
type DebugConfig struct {
	ShowHUD bool
	LogSync bool // Log every spawn/despawn during reconciliation
}

// ColorConfig contains render colors
type ColorConfig struct {
	Background  color.RGBA
	Wall        color.RGBA
	Player      color.RGBA
	LocalPlayer color.RGBA
	Bullet      color.RGBA
	Aim         color.RGBA
	HUDText     color.RGBA
	ErrorText   color.RGBA
}

// Global configuration instances
var C *Config
var Net NetConfig
var Interp InterpConfig
var Camera CameraConfig
var Debug DebugConfig
var Colors ColorConfig

func init() {
	C = &Config{
		Width:  1280,
		Height: 720,
		Title:  "Arena",
	}

	Net = NetConfig{
		URL:                 "ws://localhost:7373/connect",
		DialTimeout:         10 * time.Second,
		WriteTimeout:        3 * time.Second,
		ReadLimit:           1 << 20,
		InboundBuffer:       64,
		OutboundBuffer:      32,
		MaxSnapshotsPerTick: 8,
		WarnInterval:        time.Second,
		WarnBurst:           3,
	}

	Interp = InterpConfig{
		Lambda:  15.0, // ~4 ticks to cover most of a gap at 60 TPS
		Epsilon: 0.05,
	}

	Camera = CameraConfig{
		Zoom:         1.0,
		ZoomStep:     1.25,
		MinZoom:      0.5,
		MaxZoom:      2.5,
		ZoomDuration: 0.25,
	}

	Debug = DebugConfig{
		ShowHUD: true,
		LogSync: false,
	}

	Colors = ColorConfig{
		Background:  color.RGBA{R: 24, G: 26, B: 33, A: 255},
		Wall:        color.RGBA{R: 96, G: 102, B: 118, A: 255},
		Player:      color.RGBA{R: 230, G: 120, B: 80, A: 255},
		LocalPlayer: color.RGBA{R: 110, G: 220, B: 120, A: 255},
		Bullet:      color.RGBA{R: 250, G: 230, B: 120, A: 255},
		Aim:         color.RGBA{R: 255, G: 255, B: 255, A: 200},
		HUDText:     color.RGBA{R: 144, G: 238, B: 144, A: 255},
		ErrorText:   color.RGBA{R: 255, G: 110, B: 110, A: 255},
	}
}
