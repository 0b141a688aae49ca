package domain

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Identity is the transport-level participant identity carried in grants.
type Identity string

// NewIdentity returns a fresh random identity.
func NewIdentity() Identity {
	return Identity(uuid.NewString())
}

// ParticipantType is the `type` tag stored in participant metadata.
type ParticipantType string

const (
	ParticipantHost     ParticipantType = "HOST"
	ParticipantGuest    ParticipantType = "GUEST"
	ParticipantObserver ParticipantType = "OBSERVER"
)

// ParticipantMetadata is the small JSON object the transport keeps per
// participant. Nickname is only set for guests.
type ParticipantMetadata struct {
	Type     ParticipantType `json:"type"`
	Nickname Nickname        `json:"nickname,omitempty"`
}

func (m ParticipantMetadata) Encode() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeParticipantMetadata parses transport metadata. Empty input yields a
// zero value and no error.
func DecodeParticipantMetadata(raw string) (ParticipantMetadata, error) {
	var m ParticipantMetadata
	if raw == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return ParticipantMetadata{}, err
	}
	return m, nil
}
