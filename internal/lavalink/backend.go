// Package lavalink implements the audio backend on top of a Lavalink v4
// cluster. Discord voice credentials are forwarded to Lavalink, which
// streams to the voice channel on its own.
package lavalink

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/voice"
)

var ErrNotStarted = errors.New("lavalink client is not started")

// TrackEndFunc is called when a player finished a track. mayStartNext is
// false when the track was stopped or replaced on purpose.
type TrackEndFunc func(guildID, handle string, mayStartNext bool)

// Backend is a voice.AudioBackend backed by disgolink.
type Backend struct {
	log zerolog.Logger

	mu         sync.RWMutex
	client     disgolink.Client
	onTrackEnd TrackEndFunc
}

var _ voice.AudioBackend = (*Backend)(nil)

func New(logger zerolog.Logger) *Backend {
	return &Backend{log: logger.With().Str("component", "lavalink").Logger()}
}

// OnTrackEnd sets the track end callback. Set it before Start.
func (b *Backend) OnTrackEnd(fn TrackEndFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onTrackEnd = fn
}

// Start creates the client for the bot user and connects to every node. It is
// a no-op once started, since Discord may deliver Ready more than once.
func (b *Backend) Start(ctx context.Context, userID string, nodes []Node) error {
	if len(nodes) == 0 {
		return errors.New("no lavalink nodes configured")
	}
	id, err := snowflake.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid bot user id %q: %w", userID, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return nil
	}

	client := disgolink.New(id, disgolink.WithListenerFunc(b.handleTrackEnd))
	var connected int
	for _, n := range nodes {
		_, err := client.AddNode(ctx, disgolink.NodeConfig{
			Name:     n.Name,
			Address:  n.Address,
			Password: n.Password,
			Secure:   n.Secure,
		})
		if err != nil {
			b.log.Error().Err(err).Str("node", n.Name).Msg("failed to add lavalink node")
			continue
		}
		connected++
		b.log.Info().Str("node", n.Name).Str("address", n.Address).Msg("lavalink node added")
	}
	if connected == 0 {
		client.Close()
		return errors.New("no lavalink node could be reached")
	}
	b.client = client
	return nil
}

// Close disconnects from every node.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		b.client.Close()
		b.client = nil
	}
}

func (b *Backend) get() (disgolink.Client, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.client == nil {
		return nil, ErrNotStarted
	}
	return b.client, nil
}

func (b *Backend) LoadTracks(ctx context.Context, query string) (voice.LoadResult, error) {
	client, err := b.get()
	if err != nil {
		return voice.LoadResult{}, err
	}
	node := client.BestNode()
	if node == nil {
		return voice.LoadResult{}, errors.New("no lavalink node available")
	}

	var res voice.LoadResult
	node.LoadTracksHandler(ctx, query, disgolink.NewResultHandler(
		func(track lavalink.Track) {
			res = voice.LoadResult{Kind: voice.LoadTrack, Tracks: []voice.Track{toTrack(track)}}
		},
		func(playlist lavalink.Playlist) {
			res = fromPlaylist(playlist)
		},
		func(tracks []lavalink.Track) {
			res = fromSearch(tracks)
		},
		func() {
			res = voice.LoadResult{Kind: voice.LoadNoMatches}
		},
		func(err error) {
			res = voice.LoadResult{Kind: voice.LoadFailed, Reason: err.Error()}
		},
	))
	return res, nil
}

func (b *Backend) Play(ctx context.Context, guildID string, track voice.Track) error {
	if track.Handle == "" {
		return fmt.Errorf("track %q has no encoded handle", track.Ref())
	}
	player, err := b.player(guildID)
	if err != nil {
		return err
	}
	if err := player.Update(ctx, lavalink.WithEncodedTrack(track.Handle), lavalink.WithPaused(false)); err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}
	return nil
}

func (b *Backend) Stop(ctx context.Context, guildID string) error {
	client, err := b.get()
	if err != nil {
		return err
	}
	id, err := snowflake.Parse(guildID)
	if err != nil {
		return fmt.Errorf("invalid guild id %q: %w", guildID, err)
	}
	player := client.ExistingPlayer(id)
	if player == nil || player.Track() == nil {
		return nil
	}
	if err := player.Update(ctx, lavalink.WithNullTrack()); err != nil {
		return fmt.Errorf("failed to stop player: %w", err)
	}
	return nil
}

func (b *Backend) SetPaused(ctx context.Context, guildID string, paused bool) error {
	player, err := b.player(guildID)
	if err != nil {
		return err
	}
	if err := player.Update(ctx, lavalink.WithPaused(paused)); err != nil {
		return fmt.Errorf("failed to set paused: %w", err)
	}
	return nil
}

func (b *Backend) SetVolume(ctx context.Context, guildID string, volume int) error {
	player, err := b.player(guildID)
	if err != nil {
		return err
	}
	if err := player.Update(ctx, lavalink.WithVolume(volume)); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}
	return nil
}

func (b *Backend) player(guildID string) (disgolink.Player, error) {
	client, err := b.get()
	if err != nil {
		return nil, err
	}
	id, err := snowflake.Parse(guildID)
	if err != nil {
		return nil, fmt.Errorf("invalid guild id %q: %w", guildID, err)
	}
	return client.Player(id), nil
}

// VoiceStateUpdate forwards the bot's own voice state. An empty channelID
// means the bot left voice.
func (b *Backend) VoiceStateUpdate(ctx context.Context, guildID, channelID, sessionID string) {
	client, err := b.get()
	if err != nil {
		return
	}
	gid, err := snowflake.Parse(guildID)
	if err != nil {
		return
	}
	var cid *snowflake.ID
	if channelID != "" {
		id, err := snowflake.Parse(channelID)
		if err != nil {
			return
		}
		cid = &id
	}
	client.OnVoiceStateUpdate(ctx, gid, cid, sessionID)
}

// VoiceServerUpdate forwards the voice server credentials of a guild.
func (b *Backend) VoiceServerUpdate(ctx context.Context, guildID, token, endpoint string) {
	client, err := b.get()
	if err != nil {
		return
	}
	gid, err := snowflake.Parse(guildID)
	if err != nil {
		return
	}
	client.OnVoiceServerUpdate(ctx, gid, token, endpoint)
}

func (b *Backend) handleTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	b.trackEnded(player.GuildID(), event)
}

func (b *Backend) trackEnded(guildID snowflake.ID, event lavalink.TrackEndEvent) {
	b.mu.RLock()
	fn := b.onTrackEnd
	b.mu.RUnlock()

	b.log.Debug().
		Str("guild", guildID.String()).
		Str("reason", string(event.Reason)).
		Msg("track ended")
	if fn == nil {
		return
	}
	fn(guildID.String(), event.Track.Encoded, event.Reason.MayStartNext())
}

func toTrack(t lavalink.Track) voice.Track {
	out := voice.Track{
		Handle:   t.Encoded,
		Title:    t.Info.Title,
		Author:   t.Info.Author,
		IsStream: t.Info.IsStream,
	}
	if t.Info.URI != nil {
		out.URI = *t.Info.URI
	}
	if !t.Info.IsStream {
		out.Length = time.Duration(t.Info.Length) * time.Millisecond
	}
	return out
}

func fromPlaylist(p lavalink.Playlist) voice.LoadResult {
	tracks := make([]voice.Track, len(p.Tracks))
	for i, t := range p.Tracks {
		tracks[i] = toTrack(t)
	}
	if len(tracks) == 0 {
		return voice.LoadResult{Kind: voice.LoadNoMatches}
	}
	return voice.LoadResult{Kind: voice.LoadPlaylist, Tracks: tracks, PlaylistName: p.Info.Name}
}

// fromSearch keeps the first hit; a search is a request for one track.
func fromSearch(tracks []lavalink.Track) voice.LoadResult {
	if len(tracks) == 0 {
		return voice.LoadResult{Kind: voice.LoadNoMatches}
	}
	return voice.LoadResult{Kind: voice.LoadTrack, Tracks: []voice.Track{toTrack(tracks[0])}}
}
