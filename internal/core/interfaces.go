package core

import (
	"context"

	"github.com/dkeye/FrontDesk/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_core.go -package=mocks github.com/dkeye/FrontDesk/internal/core RoomTransport,GrantSigner

// TransportRoom is a live room as reported by the media transport.
type TransportRoom struct {
	Name            domain.RoomName `json:"name"`
	SID             string          `json:"sid,omitempty"`
	NumParticipants int             `json:"num_participants"`
}

// TransportParticipant is a connected participant. Metadata is the raw JSON
// string kept by the transport; see domain.ParticipantMetadata.
type TransportParticipant struct {
	Identity domain.Identity `json:"identity"`
	Name     string          `json:"name,omitempty"`
	Metadata string          `json:"metadata"`
}

// RoomTransport is the external real-time media room service.
// Every call may block on network I/O.
type RoomTransport interface {
	ListRooms(ctx context.Context) ([]TransportRoom, error)
	ListParticipants(ctx context.Context, room domain.RoomName) ([]TransportParticipant, error)
	UpdateParticipantMetadata(ctx context.Context, room domain.RoomName, identity domain.Identity, metadata string) error
}

// GrantSigner turns a grant into an opaque bearer credential.
type GrantSigner interface {
	Sign(ctx context.Context, grant GrantSpec) (string, error)
}
