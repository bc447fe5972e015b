package voice

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/keshon/vinny/internal/i18n"
)

// Play handles a play request. Without input it resumes a paused stream, or
// replies with usage help when nothing is paused; neither case loads anything.
func (c *Connection) Play(ctx context.Context, raw string, ev ControlEvent) error {
	if strings.TrimSpace(raw) != "" {
		return c.LoadTrack(ctx, raw, ev)
	}

	c.Observe(ev)
	resumed, err := c.resumePaused(ctx)
	if err != nil {
		return err
	}

	var text string
	if resumed {
		text = c.tr(ev.Locale(), i18n.KeyResumed)
	} else {
		text = c.tr(ev.Locale(), i18n.KeyPlayHelp, c.helpPrefix(ev))
	}
	if err := ev.Reply(text); err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	return nil
}

// LoadTrack resolves raw input through the audio backend and either starts it
// right away or queues it. Progress is reported through ev's status message.
func (c *Connection) LoadTrack(ctx context.Context, raw string, ev ControlEvent) error {
	c.Observe(ev)
	raw = strings.TrimSpace(raw)
	query := ResolveInput(raw, c.cfg.SearchPrefix)
	c.status(ev, i18n.KeyLoading, raw)

	res, err := c.deps.Backend.LoadTracks(ctx, query)
	if lerr := loadError(query, res, err); lerr != nil {
		c.reportLoadError(ev, raw, lerr)
		return lerr
	}

	if res.Kind == LoadPlaylist {
		name := res.PlaylistName
		if name == "" {
			name = raw
		}
		entries := make([]*QueueEntry, len(res.Tracks))
		for i, t := range res.Tracks {
			entries[i] = &QueueEntry{Track: t, RequestedBy: ev.RequestingUser()}
		}
		return c.enqueueBatch(ctx, name, entries, ev)
	}

	entry := NewQueueEntry(res.Tracks[0], ev)

	c.mu.Lock()
	added, dropped := c.enqueueLocked([]*QueueEntry{entry})
	n := c.startNextLocked(ctx)
	position := slices.Index(c.queue, entry) + 1
	c.mu.Unlock()

	if dropped > 0 {
		c.status(ev, i18n.KeyQueueFull, c.cfg.MaxQueueSize)
		return &CapacityError{Added: added, Dropped: dropped, Max: c.cfg.MaxQueueSize}
	}
	c.deliver(n)
	switch {
	case n != nil && n.entry == entry:
		return nil
	case position == 0:
		// the backend refused to start it and it was skipped
		lerr := &BackendLoadError{Query: query, Reason: "playback could not be started"}
		c.reportLoadError(ev, raw, lerr)
		return lerr
	}
	c.status(ev, i18n.KeyQueued, entry.Track.Display(), position)
	return nil
}

// LoadPlaylist loads every reference of a stored playlist in order and queues
// the resolved tracks as one batch. References that fail to load are skipped.
func (c *Connection) LoadPlaylist(ctx context.Context, name string, refs []string, ev ControlEvent) error {
	c.Observe(ev)
	c.status(ev, i18n.KeyPlaylistStart, name)

	var (
		entries []*QueueEntry
		failed  int
	)
	for _, ref := range refs {
		query := ResolveInput(ref, c.cfg.SearchPrefix)
		res, err := c.deps.Backend.LoadTracks(ctx, query)
		if lerr := loadError(query, res, err); lerr != nil {
			failed++
			c.log.Debug().Err(lerr).Str("playlist", name).Msg("skipping playlist track")
			continue
		}
		tracks := res.Tracks
		if res.Kind == LoadTrack {
			tracks = tracks[:1]
		}
		for _, t := range tracks {
			entries = append(entries, &QueueEntry{Track: t, RequestedBy: ev.RequestingUser()})
		}
	}

	if len(entries) == 0 {
		lerr := &BackendLoadError{Query: name, NoMatches: true}
		c.reportLoadError(ev, name, lerr)
		return lerr
	}
	if failed > 0 {
		c.log.Info().Str("playlist", name).Int("failed", failed).Int("loaded", len(entries)).Msg("playlist partially loaded")
	}
	return c.enqueueBatch(ctx, name, entries, ev)
}

// enqueueBatch appends a playlist in one critical section so concurrent
// enqueues never split it.
func (c *Connection) enqueueBatch(ctx context.Context, name string, entries []*QueueEntry, ev ControlEvent) error {
	c.mu.Lock()
	added, dropped := c.enqueueLocked(entries)
	n := c.startNextLocked(ctx)
	c.mu.Unlock()

	c.deliver(n)
	if dropped > 0 {
		c.status(ev, i18n.KeyPlaylistPartial, added, len(entries), c.cfg.MaxQueueSize)
		return &CapacityError{Added: added, Dropped: dropped, Max: c.cfg.MaxQueueSize}
	}
	c.status(ev, i18n.KeyPlaylistLoaded, added, name)
	return nil
}

func (c *Connection) reportLoadError(ev ControlEvent, input string, lerr *BackendLoadError) {
	if lerr.NoMatches {
		c.status(ev, i18n.KeyNoMatches, input)
		return
	}
	reason := lerr.Reason
	if reason == "" && lerr.Err != nil {
		reason = lerr.Err.Error()
	}
	c.status(ev, i18n.KeyLoadFailed, input, reason)
}

func (c *Connection) helpPrefix(ev ControlEvent) string {
	if ev.Source() == SourceSlash {
		return "/"
	}
	return c.cfg.CommandPrefix
}

// loadError maps a backend answer to a BackendLoadError, or nil when at
// least one track was resolved.
func loadError(query string, res LoadResult, err error) *BackendLoadError {
	if err != nil {
		var lerr *BackendLoadError
		if errors.As(err, &lerr) {
			return lerr
		}
		return &BackendLoadError{Query: query, Err: err}
	}
	switch res.Kind {
	case LoadNoMatches:
		return &BackendLoadError{Query: query, NoMatches: true}
	case LoadFailed:
		return &BackendLoadError{Query: query, Reason: res.Reason}
	}
	if len(res.Tracks) == 0 {
		return &BackendLoadError{Query: query, NoMatches: true}
	}
	return nil
}
