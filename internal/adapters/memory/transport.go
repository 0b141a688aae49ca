// Package memory is an in-process RoomTransport for local runs and tests.
// Rooms and participants only exist once something adds them.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

type room struct {
	sid          string
	participants map[domain.Identity]*core.TransportParticipant
}

type Transport struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]*room
	seq   int
}

func NewTransport() *Transport {
	return &Transport{rooms: make(map[domain.RoomName]*room)}
}

// AddRoom makes name a live room. Adding an existing room is a no-op.
func (t *Transport) AddRoom(name domain.RoomName) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addRoomLocked(name)
}

func (t *Transport) addRoomLocked(name domain.RoomName) *room {
	if r, ok := t.rooms[name]; ok {
		return r
	}
	t.seq++
	r := &room{
		sid:          fmt.Sprintf("RM_%d", t.seq),
		participants: make(map[domain.Identity]*core.TransportParticipant),
	}
	t.rooms[name] = r
	return r
}

// AddParticipant connects a participant, creating the room on demand.
func (t *Transport) AddParticipant(name domain.RoomName, p core.TransportParticipant) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.addRoomLocked(name)
	r.participants[p.Identity] = &p
}

func (t *Transport) RemoveParticipant(name domain.RoomName, identity domain.Identity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.rooms[name]; ok {
		delete(r.participants, identity)
	}
}

func (t *Transport) ListRooms(ctx context.Context) ([]core.TransportRoom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]core.TransportRoom, 0, len(t.rooms))
	for name, r := range t.rooms {
		out = append(out, core.TransportRoom{Name: name, SID: r.sid, NumParticipants: len(r.participants)})
	}
	slices.SortFunc(out, func(a, b core.TransportRoom) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (t *Transport) ListParticipants(ctx context.Context, name domain.RoomName) ([]core.TransportParticipant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	out := make([]core.TransportParticipant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b core.TransportParticipant) int { return cmp.Compare(a.Identity, b.Identity) })
	return out, nil
}

func (t *Transport) UpdateParticipantMetadata(ctx context.Context, name domain.RoomName, identity domain.Identity, metadata string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rooms[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	p, ok := r.participants[identity]
	if !ok {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, identity)
	}
	p.Metadata = metadata
	return nil
}

var _ core.RoomTransport = (*Transport)(nil)
