package components

import "github.com/yohamta/donburi"

type BulletData struct {
	ID int32
}

var Bullet = donburi.NewComponentType[BulletData]()
