package broker

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const rosterConcurrency = 8

// Guest is a transport participant tagged as a guest.
type Guest struct {
	Identity domain.Identity `json:"identity"`
	Name     string          `json:"name,omitempty"`
	Nickname domain.Nickname `json:"nickname,omitempty"`
}

// RoomRoster is a live, registered room with its guests.
type RoomRoster struct {
	Room   domain.RoomName `json:"room"`
	Guests []Guest         `json:"guests"`
}

// SetNickname tags a live participant as a guest with the given nickname.
// This is what links transport identities to the nickname keys used for mix
// and layout state. Failures are not retried.
func (b *Broker) SetNickname(ctx context.Context, room domain.RoomName, identity domain.Identity, nickname domain.Nickname) error {
	if room == "" || identity == "" || nickname == "" {
		return fmt.Errorf("%w: room, identity and nickname are required", core.ErrValidation)
	}
	meta, err := domain.ParticipantMetadata{Type: domain.ParticipantGuest, Nickname: nickname}.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode metadata: %w", core.ErrValidation, err)
	}

	tctx, cancel := b.transportCtx(ctx)
	defer cancel()
	if err := b.Transport.UpdateParticipantMetadata(tctx, room, identity, meta); err != nil {
		log.Error().Err(err).Str("module", "broker").Str("room", string(room)).Str("identity", string(identity)).Msg("set nickname failed")
		return fmt.Errorf("%w: set nickname: %w", core.ErrTransport, err)
	}
	log.Info().Str("module", "broker").Str("room", string(room)).Str("identity", string(identity)).Str("nickname", string(nickname)).Msg("set nickname")
	b.publish(core.RoomUpdated, room)
	return nil
}

// ListRooms returns the live rooms this registry knows about, each with its
// guest roster, ordered by room name.
func (b *Broker) ListRooms(ctx context.Context) ([]RoomRoster, error) {
	live, err := b.liveRooms(ctx)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[RoomRoster]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(rosterConcurrency)
	for _, r := range live {
		if !b.Registry.Exists(r.Name) {
			continue
		}
		name := r.Name
		p.Go(func(ctx context.Context) (RoomRoster, error) {
			return b.roster(ctx, name)
		})
	}
	rosters, err := p.Wait()
	if err != nil {
		return nil, err
	}
	if rosters == nil {
		rosters = []RoomRoster{}
	}
	slices.SortFunc(rosters, func(a, b RoomRoster) int { return cmp.Compare(a.Room, b.Room) })
	return rosters, nil
}

func (b *Broker) roster(ctx context.Context, room domain.RoomName) (RoomRoster, error) {
	tctx, cancel := b.transportCtx(ctx)
	defer cancel()
	participants, err := b.Transport.ListParticipants(tctx, room)
	if err != nil {
		return RoomRoster{}, fmt.Errorf("%w: list participants of %q: %w", core.ErrTransport, room, err)
	}
	guests := make([]Guest, 0, len(participants))
	for _, p := range participants {
		meta, err := domain.DecodeParticipantMetadata(p.Metadata)
		if err != nil {
			log.Debug().Err(err).Str("module", "broker").Str("identity", string(p.Identity)).Msg("unreadable participant metadata")
			continue
		}
		if meta.Type != domain.ParticipantGuest {
			continue
		}
		guests = append(guests, Guest{Identity: p.Identity, Name: p.Name, Nickname: meta.Nickname})
	}
	return RoomRoster{Room: room, Guests: guests}, nil
}
