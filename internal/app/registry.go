package app

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/rs/zerolog/log"
)

// channel selects which per-participant state an operation touches.
type channel int

const (
	mixChannel channel = iota
	layoutChannel
)

func (c channel) String() string {
	if c == layoutChannel {
		return "layout"
	}
	return "mix"
}

type roomEntry struct {
	passcode    string
	mix         domain.Assignments
	layout      domain.Assignments
	mixSlots    domain.Slots
	layoutSlots domain.Slots
}

func newRoomEntry(passcode string) *roomEntry {
	return &roomEntry{
		passcode:    passcode,
		mix:         domain.Assignments{},
		layout:      domain.Assignments{},
		mixSlots:    domain.Slots{},
		layoutSlots: domain.Slots{},
	}
}

func (e *roomEntry) live(c channel) domain.Assignments {
	if c == layoutChannel {
		return e.layout
	}
	return e.mix
}

func (e *roomEntry) setLive(c channel, a domain.Assignments) {
	if c == layoutChannel {
		e.layout = a
		return
	}
	e.mix = a
}

func (e *roomEntry) slots(c channel) domain.Slots {
	if c == layoutChannel {
		return e.layoutSlots
	}
	return e.mixSlots
}

func (e *roomEntry) state(name domain.RoomName) domain.RoomState {
	return domain.RoomState{
		Name:        name,
		Passcode:    e.passcode,
		Mix:         e.mix.Clone(),
		Layout:      e.layout.Clone(),
		MixSlots:    e.mixSlots.Clone(),
		LayoutSlots: e.layoutSlots.Clone(),
	}
}

// Registry is the room directory. One lock guards the map and every room's
// sub-state, and it is only held inside a single method call.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]*roomEntry
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[domain.RoomName]*roomEntry),
	}
}

// room must be called with mu held.
func (r *Registry) room(name domain.RoomName) (*roomEntry, error) {
	e, ok := r.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: no such room %q", core.ErrNotFound, name)
	}
	return e, nil
}

// Create registers a new room with empty mix and layout state.
func (r *Registry) Create(name domain.RoomName, passcode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[name]; ok {
		return fmt.Errorf("%w: room %q already exists", core.ErrConflict, name)
	}
	r.rooms[name] = newRoomEntry(passcode)
	log.Info().Str("module", "app.registry").Str("room", string(name)).Msg("created room")
	return nil
}

func (r *Registry) Exists(name domain.RoomName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[name]
	return ok
}

// VerifyPasscode reports whether candidate matches the room's passcode
// exactly. Unknown rooms never verify.
func (r *Registry) VerifyPasscode(name domain.RoomName, candidate string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[name]
	if !ok {
		return false
	}
	return e.passcode == candidate
}

func (r *Registry) get(name domain.RoomName, c channel, nick domain.Nickname) (domain.Descriptor, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.room(name)
	if err != nil {
		return nil, false, err
	}
	d, ok := e.live(c)[nick]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(d), true, nil
}

func (r *Registry) set(name domain.RoomName, c channel, nick domain.Nickname, d domain.Descriptor) (domain.Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.room(name)
	if err != nil {
		return nil, err
	}
	stored := bytes.Clone(d)
	e.live(c)[nick] = stored
	log.Debug().Str("module", "app.registry").Str("room", string(name)).Str("nickname", string(nick)).Msgf("set %s", c)
	return bytes.Clone(stored), nil
}

func (r *Registry) save(name domain.RoomName, c channel, slot domain.SlotID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.room(name)
	if err != nil {
		return err
	}
	e.slots(c)[slot] = e.live(c).Clone()
	log.Info().Str("module", "app.registry").Str("room", string(name)).Str("slot", string(slot)).Msgf("saved %s slot", c)
	return nil
}

func (r *Registry) load(name domain.RoomName, c channel, slot domain.SlotID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.room(name)
	if err != nil {
		return false, err
	}
	snap, ok := e.slots(c)[slot]
	if !ok {
		log.Info().Str("module", "app.registry").Str("room", string(name)).Str("slot", string(slot)).Msgf("%s slot is empty, nothing loaded", c)
		return false, nil
	}
	e.setLive(c, snap.Clone())
	log.Info().Str("module", "app.registry").Str("room", string(name)).Str("slot", string(slot)).Msgf("loaded %s slot", c)
	return true, nil
}

// GetMix returns the nickname's mix descriptor, or ok=false when none is set.
func (r *Registry) GetMix(name domain.RoomName, nick domain.Nickname) (domain.Descriptor, bool, error) {
	return r.get(name, mixChannel, nick)
}

// SetMix stores d and returns the stored value.
func (r *Registry) SetMix(name domain.RoomName, nick domain.Nickname, d domain.Descriptor) (domain.Descriptor, error) {
	return r.set(name, mixChannel, nick, d)
}

func (r *Registry) GetLayout(name domain.RoomName, nick domain.Nickname) (domain.Descriptor, bool, error) {
	return r.get(name, layoutChannel, nick)
}

func (r *Registry) SetLayout(name domain.RoomName, nick domain.Nickname, d domain.Descriptor) (domain.Descriptor, error) {
	return r.set(name, layoutChannel, nick, d)
}

// SaveMixSlot snapshots the live mix into slot, replacing any earlier
// snapshot under the same id.
func (r *Registry) SaveMixSlot(name domain.RoomName, slot domain.SlotID) error {
	return r.save(name, mixChannel, slot)
}

// LoadMixSlot replaces the live mix with the snapshot in slot. An absent
// slot leaves the live mix untouched and reports false.
func (r *Registry) LoadMixSlot(name domain.RoomName, slot domain.SlotID) (bool, error) {
	return r.load(name, mixChannel, slot)
}

func (r *Registry) SaveLayoutSlot(name domain.RoomName, slot domain.SlotID) error {
	return r.save(name, layoutChannel, slot)
}

func (r *Registry) LoadLayoutSlot(name domain.RoomName, slot domain.SlotID) (bool, error) {
	return r.load(name, layoutChannel, slot)
}

// State returns a copy of the full room state.
func (r *Registry) State(name domain.RoomName) (domain.RoomState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[name]
	if !ok {
		return domain.RoomState{}, false
	}
	return e.state(name), true
}

// ReplaceState overwrites mix, layout and both slot maps from incoming.
// Name and passcode in incoming are ignored.
func (r *Registry) ReplaceState(name domain.RoomName, incoming domain.RoomState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.room(name)
	if err != nil {
		return err
	}
	e.mix = incoming.Mix.Clone()
	e.layout = incoming.Layout.Clone()
	e.mixSlots = incoming.MixSlots.Clone()
	e.layoutSlots = incoming.LayoutSlots.Clone()
	log.Info().Str("module", "app.registry").Str("room", string(name)).Msg("replaced room state")
	return nil
}

// List returns a summary per room, ordered by name.
func (r *Registry) List() []domain.RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoomSummary, 0, len(r.rooms))
	for name, e := range r.rooms {
		out = append(out, domain.RoomSummary{
			Name:          name,
			MixEntries:    len(e.mix),
			LayoutEntries: len(e.layout),
			MixSlots:      e.mixSlots.IDs(),
			LayoutSlots:   e.layoutSlots.IDs(),
		})
	}
	slices.SortFunc(out, func(a, b domain.RoomSummary) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Snapshot dumps every room including passcodes. Only for guarded debug
// endpoints.
func (r *Registry) Snapshot() []domain.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoomState, 0, len(r.rooms))
	for name, e := range r.rooms {
		out = append(out, e.state(name))
	}
	slices.SortFunc(out, func(a, b domain.RoomState) int { return cmp.Compare(a.Name, b.Name) })
	return out
}
