package main

import (
	"flag"
	"log"

	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/fonts"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(session scenes.Session) *Game {
	g := &Game{}
	g.scene = scenes.NewConnectScene(g, session, nil)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	url := flag.String("url", "", "websocket endpoint (default: last used, then "+config.Net.URL+")")
	room := flag.String("room", "", "room id to join")
	token := flag.String("token", "", "session token issued by the login service")
	devID := flag.String("id", "", "user id for an unsigned dev token (dev server only)")
	hud := flag.Bool("hud", config.Debug.ShowHUD, "show the status overlay")
	logSync := flag.Bool("log-sync", config.Debug.LogSync, "log every spawn and despawn")
	flag.Parse()

	config.Debug.ShowHUD = *hud
	config.Debug.LogSync = *logSync

	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	saved, _ := systems.LoadSession()

	session := scenes.Session{URL: *url, RoomID: *room, Token: *token}
	if saved != nil {
		if session.URL == "" {
			session.URL = saved.URL
		}
		if session.RoomID == "" {
			session.RoomID = saved.RoomID
		}
		if session.Token == "" && *devID == "" {
			*devID = saved.UserID
		}
	}
	if session.URL == "" {
		session.URL = config.Net.URL
	}
	if session.Token == "" {
		if *devID == "" {
			log.Fatal("either -token or -id is required")
		}
		session.Token = network.DevToken(*devID)
	}
	config.Net.URL = session.URL
	config.Net.RoomID = session.RoomID

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)

	if err := ebiten.RunGame(NewGame(session)); err != nil {
		log.Fatal(err)
	}
}
