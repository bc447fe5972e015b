package voice

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/i18n"
)

const (
	DefaultMaxQueueSize = 100
	DefaultVolume       = 100
	MinVolume           = 0
	MaxVolume           = 150
)

// Config holds per-connection limits and defaults.
type Config struct {
	MaxQueueSize  int
	SearchPrefix  string
	CommandPrefix string
	// DefaultVolume is the starting volume of new connections. nil means
	// DefaultVolume; zero is a valid, muted start.
	DefaultVolume *int
}

func (c Config) withDefaults() Config {
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = DefaultMaxQueueSize
	}
	if c.SearchPrefix == "" {
		c.SearchPrefix = DefaultSearchPrefix
	}
	volume := DefaultVolume
	if c.DefaultVolume != nil {
		volume = min(max(*c.DefaultVolume, MinVolume), MaxVolume)
	}
	c.DefaultVolume = &volume
	return c
}

// Deps are the collaborators shared by every connection.
type Deps struct {
	Backend    AudioBackend
	Gateway    VoiceGateway
	Messenger  Messenger
	Translator Translator
	Logger     zerolog.Logger
}

// Connection is the playback session of one guild. Every mutation goes
// through mu, so one guild's operations are serialized while other guilds
// proceed independently.
type Connection struct {
	guildID string
	cfg     Config
	deps    Deps
	log     zerolog.Logger

	mu                sync.Mutex
	state             State
	current           *QueueEntry
	queue             []*QueueEntry
	paused            bool
	volume            int
	volumeLocked      bool
	voiceChannelID    string
	lastTextChannelID string
	locale            string
}

// notice is a "now playing" update to deliver once the lock is released.
type notice struct {
	entry  *QueueEntry
	ev     ControlEvent
	track  Track
	locale string
}

func newConnection(guildID string, cfg Config, deps Deps) *Connection {
	cfg = cfg.withDefaults()
	return &Connection{
		guildID: guildID,
		cfg:     cfg,
		deps:    deps,
		log:     deps.Logger.With().Str("guild", guildID).Logger(),
		state:   StateDisconnected,
		volume:  *cfg.DefaultVolume,
	}
}

func (c *Connection) GuildID() string { return c.guildID }

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Connection) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *Connection) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

func (c *Connection) VolumeLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volumeLocked
}

func (c *Connection) VoiceChannel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voiceChannelID
}

func (c *Connection) LastTextChannel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTextChannelID
}

func (c *Connection) Locale() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locale
}

// NowPlaying returns the current track, if any.
func (c *Connection) NowPlaying() (Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Track{}, false
	}
	return c.current.Track, true
}

// Queue returns a copy of the queued tracks in play order.
func (c *Connection) Queue() []Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Track, len(c.queue))
	for i, e := range c.queue {
		out[i] = e.Track
	}
	return out
}

// Observe records the text channel and locale of the latest action so system
// messages reach the right place.
func (c *Connection) Observe(ev ControlEvent) {
	if ev == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch := ev.TextChannel(); ch != "" {
		c.lastTextChannelID = ch
	}
	if l := ev.Locale(); l != "" {
		c.locale = l
	}
}

// Connect joins channelID. Once joined, an idle connection with queued
// entries starts playing the queue head.
func (c *Connection) Connect(ctx context.Context, channelID string) error {
	if channelID == "" {
		return ErrNoVoiceChannel
	}

	c.mu.Lock()
	switch {
	case c.state == StateConnected && c.voiceChannelID == channelID:
		c.mu.Unlock()
		return nil
	case c.state == StateConnecting:
		c.mu.Unlock()
		return nil
	case c.state == StateConnected:
		// moving between channels keeps the session connected
		err := c.deps.Gateway.JoinVoice(ctx, c.guildID, channelID)
		if err == nil {
			c.voiceChannelID = channelID
		}
		c.mu.Unlock()
		if err != nil {
			return fmt.Errorf("failed to move to voice channel: %w", err)
		}
		return nil
	}
	prev := c.state
	c.state = StateConnecting
	c.mu.Unlock()

	c.log.Debug().Str("channel", channelID).Msg("joining voice channel")
	err := c.deps.Gateway.JoinVoice(ctx, c.guildID, channelID)

	c.mu.Lock()
	if c.state != StateConnecting {
		// disconnected while the join was in flight
		c.mu.Unlock()
		return ErrNotConnected
	}
	if err != nil {
		c.state = prev
		c.mu.Unlock()
		return fmt.Errorf("failed to join voice channel: %w", err)
	}
	c.state = StateConnected
	c.voiceChannelID = channelID
	if verr := c.deps.Backend.SetVolume(ctx, c.guildID, c.volume); verr != nil {
		c.log.Warn().Err(verr).Msg("failed to apply volume")
	}
	n := c.startNextLocked(ctx)
	c.mu.Unlock()

	c.log.Info().Str("channel", channelID).Msg("joined voice channel")
	c.deliver(n)
	return nil
}

// Disconnect stops playback, clears the queue and leaves the voice channel.
func (c *Connection) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	wasJoined := c.state != StateDisconnected
	c.clearLocked(ctx)
	c.state = StateDisconnected
	c.voiceChannelID = ""
	c.mu.Unlock()

	if !wasJoined {
		return nil
	}
	if err := c.deps.Gateway.LeaveVoice(ctx, c.guildID); err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	c.log.Info().Msg("left voice channel")
	return nil
}

// Suspend is called when the voice connection was lost without a leave
// request. The current entry goes back to the queue head so a later Connect
// picks up where playback stopped.
func (c *Connection) Suspend(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected && c.state != StateConnecting {
		return
	}
	if c.current != nil {
		// the interrupted track goes back on top even when the queue is at its
		// cap; new entries stay refused until it drains below the cap again
		c.queue = append([]*QueueEntry{c.current}, c.queue...)
		c.current = nil
		if err := c.deps.Backend.Stop(ctx, c.guildID); err != nil {
			c.log.Warn().Err(err).Msg("failed to stop player on suspend")
		}
	}
	c.state = StateSuspended
	c.log.Info().Int("queued", len(c.queue)).Msg("voice connection suspended")
}

// Pause pauses the current track.
func (c *Connection) Pause(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return NewUserVisible(i18n.KeyNothingPlaying)
	}
	if c.paused {
		return nil
	}
	if err := c.deps.Backend.SetPaused(ctx, c.guildID, true); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}
	c.paused = true
	return nil
}

// resumePaused clears the paused flag. It reports false when nothing was
// paused.
func (c *Connection) resumePaused(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return false, nil
	}
	if c.current != nil {
		if err := c.deps.Backend.SetPaused(ctx, c.guildID, false); err != nil {
			return false, fmt.Errorf("failed to resume: %w", err)
		}
	}
	c.paused = false
	return true, nil
}

// Skip ends the current track and starts the next one, stopping the player
// when the queue is empty.
func (c *Connection) Skip(ctx context.Context) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return NewUserVisible(i18n.KeyNothingPlaying)
	}
	c.current = nil
	n := c.startNextLocked(ctx)
	if n == nil {
		if err := c.deps.Backend.Stop(ctx, c.guildID); err != nil {
			c.log.Warn().Err(err).Msg("failed to stop player")
		}
	}
	c.mu.Unlock()

	c.deliver(n)
	return nil
}

// Stop clears the queue and the current track but stays in the channel.
func (c *Connection) Stop(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked(ctx)
}

// OnTrackEnd advances the queue when the backend reports a finished track.
// Events for a track that is no longer current are ignored.
func (c *Connection) OnTrackEnd(ctx context.Context, handle string, mayStartNext bool) {
	c.mu.Lock()
	if c.current == nil || (handle != "" && c.current.Track.Handle != handle) {
		c.mu.Unlock()
		return
	}
	c.current = nil
	var n *notice
	if mayStartNext {
		n = c.startNextLocked(ctx)
	}
	c.mu.Unlock()

	c.deliver(n)
}

// SetVolume changes the playback volume unless the volume is locked.
func (c *Connection) SetVolume(ctx context.Context, volume int) error {
	if volume < MinVolume || volume > MaxVolume {
		return NewUserVisible(i18n.KeyVolumeRange, MinVolume, MaxVolume)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.volumeLocked {
		return NewUserVisible(i18n.KeyVolumeLocked)
	}
	if c.state == StateConnected {
		if err := c.deps.Backend.SetVolume(ctx, c.guildID, volume); err != nil {
			return fmt.Errorf("failed to set volume: %w", err)
		}
	}
	c.volume = volume
	return nil
}

// SetVolumeLocked toggles the volume lock.
func (c *Connection) SetVolumeLocked(locked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volumeLocked = locked
}

// clearLocked drops the current track and the queue. Callers hold mu.
func (c *Connection) clearLocked(ctx context.Context) {
	hadTrack := c.current != nil
	c.current = nil
	c.queue = nil
	c.paused = false
	if hadTrack {
		if err := c.deps.Backend.Stop(ctx, c.guildID); err != nil {
			c.log.Warn().Err(err).Msg("failed to stop player")
		}
	}
}

// enqueueLocked appends entries up to the queue cap and returns how many
// were kept. Callers hold mu.
func (c *Connection) enqueueLocked(entries []*QueueEntry) (added, dropped int) {
	room := max(c.cfg.MaxQueueSize-len(c.queue), 0)
	added = min(room, len(entries))
	c.queue = append(c.queue, entries[:added]...)
	return added, len(entries) - added
}

// startNextLocked starts the queue head when the connection is idle and
// connected. Tracks the backend refuses are skipped. Callers hold mu.
func (c *Connection) startNextLocked(ctx context.Context) *notice {
	if c.current != nil || c.state != StateConnected {
		return nil
	}
	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = slices.Delete(c.queue, 0, 1)

		if err := c.deps.Backend.Play(ctx, c.guildID, next.Track); err != nil {
			c.log.Warn().Err(err).Str("track", next.Track.Ref()).Msg("skipping track that failed to start")
			continue
		}
		if c.paused {
			if err := c.deps.Backend.SetPaused(ctx, c.guildID, false); err != nil {
				c.log.Warn().Err(err).Msg("failed to unpause for next track")
			}
			c.paused = false
		}
		c.current = next
		c.log.Info().Str("track", next.Track.Ref()).Int("queued", len(c.queue)).Msg("now playing")
		return &notice{entry: next, ev: next.takeOrigin(), track: next.Track, locale: c.locale}
	}
	return nil
}

// deliver sends a "now playing" update through the entry's origin event.
// Closed or missing origins are skipped silently.
func (c *Connection) deliver(n *notice) {
	if n == nil || n.ev == nil {
		return
	}
	locale := n.ev.Locale()
	if locale == "" {
		locale = n.locale
	}
	if err := n.ev.UpdateStatus(c.tr(locale, i18n.KeyNowPlaying, n.track.Display())); err != nil {
		c.log.Debug().Err(err).Msg("failed to update status")
	}
}

// status updates ev's status message. Transport failures are logged and do
// not affect the operation being reported on.
func (c *Connection) status(ev ControlEvent, key string, args ...any) {
	if ev == nil || ev.Closed() {
		return
	}
	if err := ev.UpdateStatus(c.tr(ev.Locale(), key, args...)); err != nil {
		c.log.Warn().Err(&TransportError{Op: "edit", Err: err}).Msg("failed to update status")
	}
}

func (c *Connection) tr(locale, key string, args ...any) string {
	if c.deps.Translator == nil {
		return fmt.Sprint(append([]any{key}, args...)...)
	}
	return c.deps.Translator.Translate(locale, key, args...)
}
