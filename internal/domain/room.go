// Package domain contains entities without transport or locking logic.
package domain

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

type (
	RoomName string
	Nickname string
	SlotID   string
)

// Descriptor is an opaque mix or layout payload. It is stored and returned
// byte-for-byte and never inspected.
type Descriptor = json.RawMessage

// Assignments maps a participant nickname to its descriptor.
type Assignments map[Nickname]Descriptor

// Clone returns a deep copy, descriptor bytes included. A nil receiver
// yields an empty map.
func (a Assignments) Clone() Assignments {
	out := make(Assignments, len(a))
	for k, v := range a {
		out[k] = bytes.Clone(v)
	}
	return out
}

// Slots maps a slot identifier to a snapshot of assignments.
type Slots map[SlotID]Assignments

func (s Slots) Clone() Slots {
	out := make(Slots, len(s))
	for k, v := range s {
		out[k] = v.Clone()
	}
	return out
}

// IDs returns the slot identifiers in lexical order.
func (s Slots) IDs() []SlotID {
	return slices.Sorted(maps.Keys(s))
}

// RoomState is the full view of a room. Name and Passcode are identity and
// are never taken from an incoming state on replace.
type RoomState struct {
	Name        RoomName    `json:"name"`
	Passcode    string      `json:"passcode"`
	Mix         Assignments `json:"mix"`
	Layout      Assignments `json:"layout"`
	MixSlots    Slots       `json:"mixSlots"`
	LayoutSlots Slots       `json:"layoutSlots"`
}

func (s RoomState) Clone() RoomState {
	return RoomState{
		Name:        s.Name,
		Passcode:    s.Passcode,
		Mix:         s.Mix.Clone(),
		Layout:      s.Layout.Clone(),
		MixSlots:    s.MixSlots.Clone(),
		LayoutSlots: s.LayoutSlots.Clone(),
	}
}

// RoomSummary is a passcode-free listing entry.
type RoomSummary struct {
	Name          RoomName `json:"name"`
	MixEntries    int      `json:"mix_entries"`
	LayoutEntries int      `json:"layout_entries"`
	MixSlots      []SlotID `json:"mix_slots"`
	LayoutSlots   []SlotID `json:"layout_slots"`
}
