package core

import "github.com/dkeye/FrontDesk/internal/domain"

type RoomEventType string

const (
	RoomCreated RoomEventType = "room_created"
	RoomUpdated RoomEventType = "room_updated"
)

// RoomEvent tells watchers that the room directory or a room's state changed.
// It never carries state itself.
type RoomEvent struct {
	Type RoomEventType   `json:"type"`
	Room domain.RoomName `json:"room"`
}

// EventSink receives room events. Publish must not block.
type EventSink interface {
	Publish(RoomEvent)
}
