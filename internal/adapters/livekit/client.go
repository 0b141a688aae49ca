package livekit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	twirpPrefix = "/twirp/livekit.RoomService/"
	// DefaultCallTimeout bounds a shared ListRooms flight when the HTTP client
	// has no timeout of its own.
	DefaultCallTimeout = 10 * time.Second
)

// TwirpError is a non-2xx answer from the RoomService.
type TwirpError struct {
	Status int    `json:"-"`
	Code   string `json:"code"`
	Msg    string `json:"msg"`
}

func (e *TwirpError) Error() string {
	return fmt.Sprintf("livekit: %d %s: %s", e.Status, e.Code, e.Msg)
}

type roomInfo struct {
	SID             string `json:"sid"`
	Name            string `json:"name"`
	NumParticipants int    `json:"num_participants"`
}

type participantInfo struct {
	SID      string `json:"sid"`
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Metadata string `json:"metadata"`
}

type listRoomsResponse struct {
	Rooms []roomInfo `json:"rooms"`
}

type listParticipantsRequest struct {
	Room string `json:"room"`
}

type listParticipantsResponse struct {
	Participants []participantInfo `json:"participants"`
}

type updateParticipantRequest struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
	Metadata string `json:"metadata"`
}

// Client is a RoomTransport backed by the LiveKit RoomService API.
// Concurrent ListRooms calls share one request; each caller still returns as
// soon as its own context ends.
type Client struct {
	host    string
	signer  *Signer
	http    *http.Client
	timeout time.Duration
	rooms   singleflight.Group
}

// NewClient accepts http(s) or ws(s) hosts. A nil hc uses
// http.DefaultClient.
func NewClient(host string, signer *Signer, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	host = strings.TrimRight(host, "/")
	switch {
	case strings.HasPrefix(host, "wss://"):
		host = "https://" + strings.TrimPrefix(host, "wss://")
	case strings.HasPrefix(host, "ws://"):
		host = "http://" + strings.TrimPrefix(host, "ws://")
	}
	timeout := hc.Timeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Client{host: host, signer: signer, http: hc, timeout: timeout}
}

func (c *Client) call(ctx context.Context, method string, grant videoGrant, in, out any) error {
	token, err := c.signer.sign("", "", grant, serviceTokenTTL)
	if err != nil {
		return err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+twirpPrefix+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	log.Debug().Str("module", "adapters.livekit").Str("method", method).Int("status", res.StatusCode).Msg("room service call")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		te := &TwirpError{Status: res.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err := json.Unmarshal(raw, te); err != nil || te.Code == "" {
			te.Code = "unknown"
			te.Msg = strings.TrimSpace(string(raw))
		}
		return te
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) ListRooms(ctx context.Context) ([]core.TransportRoom, error) {
	ch := c.rooms.DoChan("ListRooms", func() (any, error) {
		// The flight outlives any single caller.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		var res listRoomsResponse
		if err := c.call(fctx, "ListRooms", videoGrant{RoomList: true}, struct{}{}, &res); err != nil {
			return nil, err
		}
		rooms := make([]core.TransportRoom, 0, len(res.Rooms))
		for _, r := range res.Rooms {
			rooms = append(rooms, core.TransportRoom{
				Name:            domain.RoomName(r.Name),
				SID:             r.SID,
				NumParticipants: r.NumParticipants,
			})
		}
		return rooms, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]core.TransportRoom)), nil
	}
}

func (c *Client) ListParticipants(ctx context.Context, room domain.RoomName) ([]core.TransportParticipant, error) {
	var res listParticipantsResponse
	err := c.call(ctx, "ListParticipants",
		videoGrant{RoomAdmin: true, Room: string(room)},
		listParticipantsRequest{Room: string(room)},
		&res)
	if err != nil {
		return nil, err
	}
	out := make([]core.TransportParticipant, 0, len(res.Participants))
	for _, p := range res.Participants {
		out = append(out, core.TransportParticipant{
			Identity: domain.Identity(p.Identity),
			Name:     p.Name,
			Metadata: p.Metadata,
		})
	}
	return out, nil
}

func (c *Client) UpdateParticipantMetadata(ctx context.Context, room domain.RoomName, identity domain.Identity, metadata string) error {
	return c.call(ctx, "UpdateParticipant",
		videoGrant{RoomAdmin: true, Room: string(room)},
		updateParticipantRequest{Room: string(room), Identity: string(identity), Metadata: metadata},
		nil)
}

var _ core.RoomTransport = (*Client)(nil)
