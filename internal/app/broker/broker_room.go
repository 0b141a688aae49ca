package broker

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/rs/zerolog/log"
)

// CreateRoom registers a new room and returns a host credential for its
// creator. The transport is checked for a live room of the same name before
// anything is registered; a signing failure leaves the room registered.
func (b *Broker) CreateRoom(ctx context.Context, name domain.RoomName, passcode string, identity domain.Identity) (core.Credential, error) {
	if name == "" || passcode == "" || identity == "" {
		return core.Credential{}, fmt.Errorf("%w: room name, passcode and identity are required to create a room", core.ErrValidation)
	}

	live, err := b.liveRooms(ctx)
	if err != nil {
		log.Error().Err(err).Str("module", "broker").Str("room", string(name)).Msg("create aborted")
		return core.Credential{}, err
	}
	for _, r := range live {
		if r.Name == name {
			return core.Credential{}, fmt.Errorf("%w: room %q cannot be created because it already exists", core.ErrConflict, name)
		}
	}

	if err := b.Registry.Create(name, passcode); err != nil {
		return core.Credential{}, err
	}
	b.publish(core.RoomCreated, name)

	grant, err := b.Policy.Grant(domain.RoleHost, name, identity)
	if err != nil {
		return core.Credential{}, err
	}
	return b.issue(ctx, grant)
}

// JoinRoom checks the passcode and issues a grant shaped by role. Unknown
// rooms fail before the passcode is looked at. The same identity may join
// any number of times.
func (b *Broker) JoinRoom(ctx context.Context, role domain.Role, name domain.RoomName, passcode string, identity domain.Identity) (core.Credential, error) {
	if name == "" {
		return core.Credential{}, fmt.Errorf("%w: room name is required", core.ErrValidation)
	}
	if !b.Registry.Exists(name) {
		return core.Credential{}, fmt.Errorf("%w: no such room %q", core.ErrNotFound, name)
	}
	if !b.Registry.VerifyPasscode(name, passcode) {
		log.Warn().Str("module", "broker").Str("room", string(name)).Str("role", role.String()).Msg("wrong passcode")
		return core.Credential{}, fmt.Errorf("%w: wrong passcode provided for room %q", core.ErrForbidden, name)
	}

	grant, err := b.Policy.Grant(role, name, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			log.Warn().Err(err).Str("module", "broker").Msg("join with unknown role")
		}
		return core.Credential{}, err
	}
	return b.issue(ctx, grant)
}
