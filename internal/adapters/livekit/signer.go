// Package livekit talks to a LiveKit-compatible media server: it signs
// access tokens and calls the RoomService Twirp API.
package livekit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	DefaultTokenTTL = 6 * time.Hour
	serviceTokenTTL = 10 * time.Minute
	videoClaim      = "video"
	metadataClaim   = "metadata"
)

var ErrMissingCredentials = errors.New("livekit api key and secret are required")

// videoGrant mirrors the "video" claim LiveKit reads from access tokens.
type videoGrant struct {
	RoomJoin     bool   `json:"roomJoin,omitempty"`
	RoomList     bool   `json:"roomList,omitempty"`
	RoomAdmin    bool   `json:"roomAdmin,omitempty"`
	Room         string `json:"room,omitempty"`
	CanPublish   *bool  `json:"canPublish,omitempty"`
	CanSubscribe *bool  `json:"canSubscribe,omitempty"`
}

// Signer mints HS256 access tokens keyed by an API key/secret pair.
type Signer struct {
	apiKey string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(apiKey, apiSecret string, ttl time.Duration) (*Signer, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrMissingCredentials
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Signer{
		apiKey: apiKey,
		secret: []byte(apiSecret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Sign issues a room-join token for grant.
func (s *Signer) Sign(_ context.Context, grant core.GrantSpec) (string, error) {
	meta, err := domain.ParticipantMetadata{Type: grant.Metadata}.Encode()
	if err != nil {
		return "", fmt.Errorf("unable encode metadata: %w", err)
	}
	canPublish, canSubscribe := grant.CanPublish, grant.CanSubscribe
	return s.sign(string(grant.Identity), meta, videoGrant{
		RoomJoin:     true,
		Room:         string(grant.Room),
		CanPublish:   &canPublish,
		CanSubscribe: &canSubscribe,
	}, s.ttl)
}

func (s *Signer) sign(subject, metadata string, video videoGrant, ttl time.Duration) (string, error) {
	now := s.now()
	b := jwt.NewBuilder().
		Issuer(s.apiKey).
		NotBefore(now).
		Expiration(now.Add(ttl)).
		Claim(videoClaim, video)
	if subject != "" {
		b = b.Subject(subject).JwtID(subject)
	}
	if metadata != "" {
		b = b.Claim(metadataClaim, metadata)
	}

	token, err := b.Build()
	if err != nil {
		return "", fmt.Errorf("unable build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", fmt.Errorf("unable sign token: %w", err)
	}
	return string(signed), nil
}

var _ core.GrantSigner = (*Signer)(nil)
