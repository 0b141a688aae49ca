// Package broker runs the create/join protocol on top of the room registry,
// the media transport and the grant signer.
package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/dkeye/FrontDesk/internal/app"
	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/rs/zerolog/log"
)

const DefaultTransportTimeout = 5 * time.Second

// Broker holds no state of its own. Registry calls are synchronous; only
// Transport and Signer calls may block, and no registry lock is held while
// they run.
type Broker struct {
	Registry  *app.Registry
	Policy    app.Policy
	Transport core.RoomTransport
	Signer    core.GrantSigner
	Events    core.EventSink

	// Timeout bounds every transport call. Zero means DefaultTransportTimeout.
	Timeout time.Duration

	// Candidates generates room name suggestions. Nil means app.NameCandidates.
	Candidates func(n int) []domain.RoomName
}

func (b *Broker) transportCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTransportTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (b *Broker) liveRooms(ctx context.Context) ([]core.TransportRoom, error) {
	ctx, cancel := b.transportCtx(ctx)
	defer cancel()
	rooms, err := b.Transport.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list rooms: %w", core.ErrTransport, err)
	}
	return rooms, nil
}

func (b *Broker) issue(ctx context.Context, grant core.GrantSpec) (core.Credential, error) {
	token, err := b.Signer.Sign(ctx, grant)
	if err != nil {
		return core.Credential{}, fmt.Errorf("%w: %w", core.ErrSigning, err)
	}
	log.Info().
		Str("module", "broker").
		Str("room", string(grant.Room)).
		Str("identity", string(grant.Identity)).
		Str("type", string(grant.Metadata)).
		Msg("issued grant")
	return core.Credential{Token: token, Grant: grant}, nil
}

func (b *Broker) publish(t core.RoomEventType, room domain.RoomName) {
	if b.Events == nil {
		return
	}
	b.Events.Publish(core.RoomEvent{Type: t, Room: room})
}

// NewIdentity hands out a fresh participant identity for clients that have
// none yet.
func (b *Broker) NewIdentity() domain.Identity {
	return domain.NewIdentity()
}

// SuggestRoomName returns a generated name that is neither live in the
// transport nor registered locally.
func (b *Broker) SuggestRoomName(ctx context.Context) (domain.RoomName, error) {
	live, err := b.liveRooms(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[domain.RoomName]struct{}, len(live))
	for _, r := range live {
		taken[r.Name] = struct{}{}
	}
	gen := b.Candidates
	if gen == nil {
		gen = func(n int) []domain.RoomName { return app.NameCandidates(n, nil) }
	}
	for _, name := range gen(5) {
		if _, ok := taken[name]; ok {
			continue
		}
		if b.Registry.Exists(name) {
			continue
		}
		return name, nil
	}
	return "", fmt.Errorf("%w: couldn't generate a room name, try again", core.ErrConflict)
}
