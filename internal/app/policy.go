package app

import (
	"fmt"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
)

// Policy maps a role entering a room to the grant it receives.
type Policy interface {
	Grant(role domain.Role, room domain.RoomName, requested domain.Identity) (core.GrantSpec, error)
}

type grantRule struct {
	freshIdentity bool
	metadata      domain.ParticipantType
	canPublish    bool
	canSubscribe  bool
}

// grantTable is the only place capabilities are decided.
var grantTable = map[domain.Role]grantRule{
	domain.RoleHost:     {metadata: domain.ParticipantHost, canPublish: true, canSubscribe: true},
	domain.RoleGuest:    {metadata: domain.ParticipantGuest, canPublish: true, canSubscribe: true},
	domain.RoleObserver: {freshIdentity: true, metadata: domain.ParticipantObserver, canPublish: false, canSubscribe: true},
}

// TablePolicy applies grantTable. Observers always get an identity from
// NewIdentity, whatever the caller asked for, so they cannot pose as a
// participant.
type TablePolicy struct {
	NewIdentity func() domain.Identity
}

func (p TablePolicy) Grant(role domain.Role, room domain.RoomName, requested domain.Identity) (core.GrantSpec, error) {
	rule, ok := grantTable[role]
	if !ok {
		return core.GrantSpec{}, fmt.Errorf("%w: %w: %s", core.ErrValidation, domain.ErrUnknownRole, role)
	}
	identity := requested
	if rule.freshIdentity {
		gen := p.NewIdentity
		if gen == nil {
			gen = domain.NewIdentity
		}
		identity = gen()
	}
	if identity == "" {
		return core.GrantSpec{}, fmt.Errorf("%w: identity is required to join as %s", core.ErrValidation, role)
	}
	return core.GrantSpec{
		Identity:     identity,
		Room:         room,
		Metadata:     rule.metadata,
		CanPublish:   rule.canPublish,
		CanSubscribe: rule.canSubscribe,
	}, nil
}
