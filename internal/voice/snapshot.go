package voice

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SnapshotTrack is one track of a resume snapshot.
type SnapshotTrack struct {
	Track       Track `json:"track"`
	RequestedBy User  `json:"requested_by"`
}

// ResumeSnapshot is what survives a planned restart of a guild session.
// Tracks hold the current track followed by the queue, in play order.
type ResumeSnapshot struct {
	GuildID        string          `json:"guild_id"`
	VoiceChannelID string          `json:"voice_channel_id"`
	TextChannelID  string          `json:"text_channel_id"`
	Locale         string          `json:"locale,omitempty"`
	Volume         int             `json:"volume"`
	VolumeLocked   bool            `json:"volume_locked"`
	Tracks         []SnapshotTrack `json:"tracks"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Snapshot captures the session for a restart. It reports false when nothing
// is playing.
func (c *Connection) Snapshot() (ResumeSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return ResumeSnapshot{}, false
	}

	tracks := make([]SnapshotTrack, 0, len(c.queue)+1)
	tracks = append(tracks, SnapshotTrack{Track: c.current.Track, RequestedBy: c.current.RequestedBy})
	for _, e := range c.queue {
		tracks = append(tracks, SnapshotTrack{Track: e.Track, RequestedBy: e.RequestedBy})
	}

	return ResumeSnapshot{
		GuildID:        c.guildID,
		VoiceChannelID: c.voiceChannelID,
		TextChannelID:  c.lastTextChannelID,
		Locale:         c.locale,
		Volume:         c.volume,
		VolumeLocked:   c.volumeLocked,
		Tracks:         tracks,
		CreatedAt:      time.Now().UTC(),
	}, true
}

// Restore rebuilds the session from a snapshot: volume and lock, channel
// bindings and the track list in its original order, then rejoins the voice
// channel so the first track starts playing.
func (c *Connection) Restore(ctx context.Context, snap ResumeSnapshot) error {
	if len(snap.Tracks) == 0 {
		return errors.New("snapshot has no tracks")
	}
	if snap.VoiceChannelID == "" {
		return ErrNoVoiceChannel
	}

	entries := make([]*QueueEntry, 0, len(snap.Tracks))
	for _, st := range snap.Tracks {
		track, err := c.hydrate(ctx, st.Track)
		if err != nil {
			c.log.Warn().Err(err).Str("track", st.Track.Ref()).Msg("dropping track that could not be restored")
			continue
		}
		entries = append(entries, &QueueEntry{Track: track, RequestedBy: st.RequestedBy})
	}
	if len(entries) == 0 {
		return errors.New("none of the snapshot tracks could be restored")
	}

	c.mu.Lock()
	if c.current != nil || len(c.queue) > 0 {
		c.mu.Unlock()
		return fmt.Errorf("guild %s already has an active session", c.guildID)
	}
	c.volume = min(max(snap.Volume, MinVolume), MaxVolume)
	c.volumeLocked = snap.VolumeLocked
	c.lastTextChannelID = snap.TextChannelID
	if snap.Locale != "" {
		c.locale = snap.Locale
	}
	// the head starts playing right away, so a full queue plus the current
	// track fits
	if keep := c.cfg.MaxQueueSize + 1; len(entries) > keep {
		c.log.Warn().Int("dropped", len(entries)-keep).Msg("snapshot larger than the queue cap")
		entries = entries[:keep]
	}
	c.queue = append(c.queue, entries...)
	c.mu.Unlock()

	if err := c.Connect(ctx, snap.VoiceChannelID); err != nil {
		c.Stop(ctx)
		return err
	}
	if _, ok := c.NowPlaying(); !ok {
		return errors.New("no restored track could be started")
	}
	return nil
}

// hydrate makes sure a snapshot track has a backend handle, loading it again
// by URL when the snapshot only kept the reference.
func (c *Connection) hydrate(ctx context.Context, t Track) (Track, error) {
	if t.Handle != "" {
		return t, nil
	}
	if t.URI == "" {
		return t, errors.New("track has neither handle nor URL")
	}
	res, err := c.deps.Backend.LoadTracks(ctx, t.URI)
	if lerr := loadError(t.URI, res, err); lerr != nil {
		return t, lerr
	}
	return res.Tracks[0], nil
}
