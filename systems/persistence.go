package systems

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

const sessionItem = "session"

// SavedSession is the last connection used, restored on the next launch.
type SavedSession struct {
	URL    string  `json:"url"`
	RoomID string  `json:"roomId"`
	UserID string  `json:"userId"`
	Zoom   float64 `json:"zoom"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for session storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "arena-mp",
	})
	if err != nil {
		log.Printf("[persist] could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSession returns the saved session, or nil if there is none.
func LoadSession() (*SavedSession, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(sessionItem)
	if err != nil {
		log.Printf("[persist] could not load session: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var session SavedSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("[persist] could not parse saved session: %v", err)
		return nil, err
	}
	return &session, nil
}

// SaveSession saves s to disk
func SaveSession(s *SavedSession) error {
	if !gdataInitialized || gdataManager == nil || s == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("[persist] could not serialize session: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(sessionItem, data); err != nil {
		log.Printf("[persist] could not save session: %v", err)
		return err
	}
	return nil
}
