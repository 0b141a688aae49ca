package core

import "github.com/dkeye/FrontDesk/internal/domain"

// GrantSpec is the capability set issued to a joining participant.
type GrantSpec struct {
	Identity     domain.Identity        `json:"identity"`
	Room         domain.RoomName        `json:"room"`
	Metadata     domain.ParticipantType `json:"metadata"`
	CanPublish   bool                   `json:"can_publish"`
	CanSubscribe bool                   `json:"can_subscribe"`
}

// Credential is a signed grant ready to hand back to a client.
type Credential struct {
	Token string    `json:"token"`
	Grant GrantSpec `json:"grant"`
}
