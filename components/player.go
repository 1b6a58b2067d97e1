package components

import "github.com/yohamta/donburi"

type PlayerData struct {
	UserID string // Stable id from the server
}

var Player = donburi.NewComponentType[PlayerData]()
