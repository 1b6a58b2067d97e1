package scenes

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Session is what a client needs to join a room.
type Session struct {
	URL    string
	Token  string
	RoomID string
}
