// Package voice holds the per-guild playback session: the connection state
// machine, its queue, the loading pipeline and the registry that hands out one
// connection per guild.
package voice

import (
	"context"
	"fmt"
	"time"
)

// State is the lifecycle state of a guild voice connection.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateSuspended
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateSuspended:
		return "suspended"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Track is a playable item as resolved by the audio backend.
type Track struct {
	Handle   string        `json:"handle,omitempty"` // backend-encoded track
	URI      string        `json:"uri,omitempty"`
	Title    string        `json:"title,omitempty"`
	Author   string        `json:"author,omitempty"`
	Length   time.Duration `json:"length,omitempty"`
	IsStream bool          `json:"is_stream,omitempty"`
}

// Ref returns the URL of the track, or its handle when it has none.
func (t Track) Ref() string {
	if t.URI != "" {
		return t.URI
	}
	return t.Handle
}

// Display formats the track for chat messages.
func (t Track) Display() string {
	switch {
	case t.Title != "" && t.URI != "":
		return fmt.Sprintf("[%s](%s)", t.Title, t.URI)
	case t.Title != "":
		return t.Title
	case t.URI != "":
		return t.URI
	}
	return "Unknown track"
}

// User identifies whoever triggered an action.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// LoadKind classifies a backend load result.
type LoadKind int

const (
	LoadTrack LoadKind = iota
	LoadPlaylist
	LoadNoMatches
	LoadFailed
)

// LoadResult is what the audio backend resolved a query to.
type LoadResult struct {
	Kind         LoadKind
	Tracks       []Track
	PlaylistName string
	Reason       string
}

// AudioBackend resolves queries and streams tracks to a guild's voice channel.
type AudioBackend interface {
	LoadTracks(ctx context.Context, query string) (LoadResult, error)
	Play(ctx context.Context, guildID string, track Track) error
	// Stop must be safe to call on an already stopped player.
	Stop(ctx context.Context, guildID string) error
	SetPaused(ctx context.Context, guildID string, paused bool) error
	SetVolume(ctx context.Context, guildID string, volume int) error
}

// VoiceGateway joins and leaves voice channels on the chat platform.
type VoiceGateway interface {
	JoinVoice(ctx context.Context, guildID, channelID string) error
	LeaveVoice(ctx context.Context, guildID string) error
}

// MessageHandle points at a sent chat message.
type MessageHandle struct {
	ChannelID string
	MessageID string
}

// Messenger sends system messages outside of any control event.
type Messenger interface {
	SendMessage(ctx context.Context, channelID, text string) (MessageHandle, error)
	EditMessage(ctx context.Context, h MessageHandle, text string) error
	DeleteMessage(ctx context.Context, h MessageHandle) error
}

// Translator renders a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) string
}
