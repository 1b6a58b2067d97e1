package scenes

import (
	"log"
	"sync"

	"github.com/automoto/arena-mp/assets"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/sim"
	"github.com/automoto/arena-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const (
	layerWorld ecs.LayerID = iota
	layerHUD
)

type NetworkedScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	session      Session
	transport    *network.WebSocketTransport
	state        *sim.State
	runner       *sim.Runner
	once         sync.Once
	lost         error
}

func NewNetworkedScene(sc SceneChanger, session Session, t *network.WebSocketTransport, userID string) *NetworkedScene {
	return &NetworkedScene{
		sceneChanger: sc,
		session:      session,
		transport:    t,
		state:        sim.NewState(userID),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	ns.ecsWorld.Update()

	if ns.lost != nil {
		log.Println("[client] disconnected, returning to connect screen")
		ns.saveSession()
		_ = ns.transport.Close()
		ns.sceneChanger.ChangeScene(NewConnectScene(ns.sceneChanger, ns.session, ns.lost))
	}
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	if ns.ecsWorld == nil {
		screen.Fill(cfg.Colors.Background)
		return
	}
	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	if err := ns.state.LoadMap(assets.MustLoadMap()); err != nil {
		log.Printf("[client] map rejected: %v", err)
	}
	if saved, _ := systems.LoadSession(); saved != nil && saved.Zoom > 0 {
		ns.state.SetZoom(saved.Zoom)
	}

	ns.runner = sim.NewRunner(ns.state, ns.transport)
	ns.ecsWorld = ecs.NewECS(ns.state.World)

	onClosed := func(err error) { ns.lost = err }
	ns.ecsWorld.AddSystem(systems.NewSyncSystem(ns.runner, systems.NewInputPoller(), onClosed))

	ns.ecsWorld.AddRenderer(layerWorld, systems.Renderer(ns.state, systems.DrawMap))
	ns.ecsWorld.AddRenderer(layerWorld, systems.Renderer(ns.state, systems.DrawBullets))
	ns.ecsWorld.AddRenderer(layerWorld, systems.Renderer(ns.state, systems.DrawPlayers))
	ns.ecsWorld.AddRenderer(layerHUD, func(_ *ecs.ECS, screen *ebiten.Image) {
		systems.DrawHUD(ns.state, ns.transport, screen)
	})

	ns.saveSession()
}

func (ns *NetworkedScene) saveSession() {
	zoom := cfg.Camera.Zoom
	if cam, ok := ns.state.Camera(); ok {
		zoom = cam.ZoomTarget
	}
	_ = systems.SaveSession(&systems.SavedSession{
		URL:    ns.session.URL,
		RoomID: ns.session.RoomID,
		UserID: ns.state.LocalID,
		Zoom:   zoom,
	})
}
