package voice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/vinny/internal/i18n"
)

func connected(t *testing.T, h *harness, guildID string) *Connection {
	t.Helper()
	c := h.reg.Get(guildID)
	require.NoError(t, c.Connect(context.Background(), "voice-1"))
	require.Equal(t, StateConnected, c.State())
	return c
}

func handles(tracks []Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Handle
	}
	return out
}

func TestConnectStartsQueueHead(t *testing.T) {
	h := newHarness(Config{})
	for _, n := range []string{"a", "b"} {
		h.backend.addTrack("scsearch:"+n, track(n))
	}
	c := h.reg.Get("g1")
	ctx := context.Background()

	require.NoError(t, c.LoadTrack(ctx, "a", newEvent(SourceSlash)))
	require.NoError(t, c.LoadTrack(ctx, "b", newEvent(SourceSlash)))
	_, playing := c.NowPlaying()
	assert.False(t, playing, "nothing may play before the voice channel is joined")

	require.NoError(t, c.Connect(ctx, "voice-1"))

	cur, ok := c.NowPlaying()
	require.True(t, ok)
	assert.Equal(t, "a", cur.Handle)
	assert.Equal(t, []string{"b"}, handles(c.Queue()))
	assert.Equal(t, "voice-1", c.VoiceChannel())
	assert.Equal(t, []int{DefaultVolume}, h.backend.volumes)
}

func TestZeroDefaultVolumeStartsMuted(t *testing.T) {
	muted := 0
	h := newHarness(Config{DefaultVolume: &muted})
	h.backend.addTrack("scsearch:a", track("a"))
	c := connected(t, h, "g1")

	require.NoError(t, c.LoadTrack(context.Background(), "a", newEvent(SourceText)))

	assert.Equal(t, 0, c.Volume())
	assert.Equal(t, []int{0}, h.backend.volumes)
}

func TestConnectFailureRestoresState(t *testing.T) {
	h := newHarness(Config{})
	h.gateway.err = errors.New("missing permissions")
	c := h.reg.Get("g1")

	err := c.Connect(context.Background(), "voice-1")
	require.Error(t, err)
	assert.Equal(t, StateDisconnected, c.State())
	assert.ErrorIs(t, c.Connect(context.Background(), ""), ErrNoVoiceChannel)
}

func TestDisconnectClearsEverything(t *testing.T) {
	h := newHarness(Config{})
	h.backend.addTrack("scsearch:a", track("a"))
	h.backend.addTrack("scsearch:b", track("b"))
	c := connected(t, h, "g1")
	ctx := context.Background()
	require.NoError(t, c.LoadTrack(ctx, "a", newEvent(SourceText)))
	require.NoError(t, c.LoadTrack(ctx, "b", newEvent(SourceText)))

	require.NoError(t, c.Disconnect(ctx))

	assert.Equal(t, StateDisconnected, c.State())
	assert.Empty(t, c.Queue())
	_, ok := c.NowPlaying()
	assert.False(t, ok)
	assert.Empty(t, h.gateway.joined)
	assert.Equal(t, 1, h.backend.stops)
}

func TestSuspendKeepsCurrentAtQueueHead(t *testing.T) {
	h := newHarness(Config{})
	h.backend.addTrack("scsearch:a", track("a"))
	h.backend.addTrack("scsearch:b", track("b"))
	c := connected(t, h, "g1")
	ctx := context.Background()
	require.NoError(t, c.LoadTrack(ctx, "a", newEvent(SourceText)))
	require.NoError(t, c.LoadTrack(ctx, "b", newEvent(SourceText)))

	c.Suspend(ctx)

	assert.Equal(t, StateSuspended, c.State())
	_, ok := c.NowPlaying()
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, handles(c.Queue()))

	require.NoError(t, c.Connect(ctx, "voice-1"))
	cur, ok := c.NowPlaying()
	require.True(t, ok)
	assert.Equal(t, "a", cur.Handle)
	assert.Equal(t, []string{"a", "a"}, h.backend.playedHandles())
}

func TestPauseAndResume(t *testing.T) {
	h := newHarness(Config{})
	h.backend.addTrack("scsearch:a", track("a"))
	c := connected(t, h, "g1")
	ctx := context.Background()

	var uv *UserVisibleError
	require.ErrorAs(t, c.Pause(ctx), &uv)
	assert.Equal(t, i18n.KeyNothingPlaying, uv.Key)

	require.NoError(t, c.LoadTrack(ctx, "a", newEvent(SourceSlash)))
	require.NoError(t, c.Pause(ctx))
	assert.True(t, c.Paused())

	ev := newEvent(SourceSlash)
	loads := h.backend.loadCount()
	require.NoError(t, c.Play(ctx, "", ev))

	assert.False(t, c.Paused())
	assert.Equal(t, i18n.KeyResumed, ev.lastReply())
	assert.Equal(t, loads, h.backend.loadCount())
	assert.Equal(t, []bool{true, false}, h.backend.paused)
}

func TestEmptyPlayWhileIdleRepliesHelp(t *testing.T) {
	h := newHarness(Config{CommandPrefix: "~"})
	c := h.reg.Get("g1")
	ctx := context.Background()

	slash := newEvent(SourceSlash)
	require.NoError(t, c.Play(ctx, "   ", slash))
	assert.Equal(t, i18n.KeyPlayHelp+" /", slash.lastReply())

	text := newEvent(SourceText)
	require.NoError(t, c.Play(ctx, "", text))
	assert.Equal(t, i18n.KeyPlayHelp+" ~", text.lastReply())

	assert.Zero(t, h.backend.loadCount())
	assert.Equal(t, StateDisconnected, c.State())
	assert.Empty(t, c.Queue())
}

func TestSkip(t *testing.T) {
	h := newHarness(Config{})
	h.backend.addTrack("scsearch:a", track("a"))
	h.backend.addTrack("scsearch:b", track("b"))
	c := connected(t, h, "g1")
	ctx := context.Background()
	require.NoError(t, c.LoadTrack(ctx, "a", newEvent(SourceText)))
	require.NoError(t, c.LoadTrack(ctx, "b", newEvent(SourceText)))

	require.NoError(t, c.Skip(ctx))
	cur, ok := c.NowPlaying()
	require.True(t, ok)
	assert.Equal(t, "b", cur.Handle)

	require.NoError(t, c.Skip(ctx))
	_, ok = c.NowPlaying()
	assert.False(t, ok)
	assert.Equal(t, 1, h.backend.stops)

	var uv *UserVisibleError
	assert.ErrorAs(t, c.Skip(ctx), &uv)
}

func TestSuspendOnFullQueueKeepsEveryEntry(t *testing.T) {
	h := newHarness(Config{MaxQueueSize: 2})
	for _, n := range []string{"a", "b", "c", "d"} {
		h.backend.addTrack("scsearch:"+n, track(n))
	}
	c := connected(t, h, "g1")
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, c.LoadTrack(ctx, n, newEvent(SourceText)))
	}

	c.Suspend(ctx)

	assert.Equal(t, []string{"a", "b", "c"}, handles(c.Queue()))

	var cerr *CapacityError
	require.ErrorAs(t, c.LoadTrack(ctx, "d", newEvent(SourceText)), &cerr)
	assert.Equal(t, []string{"a", "b", "c"}, handles(c.Queue()))

	require.NoError(t, c.Connect(ctx, "voice-1"))
	cur, ok := c.NowPlaying()
	require.True(t, ok)
	assert.Equal(t, "a", cur.Handle)
	assert.Equal(t, []string{"b", "c"}, handles(c.Queue()))
}

func TestOnTrackEnd(t *testing.T) {
	h := newHarness(Config{})
	for _, n := range []string{"a", "b", "c"} {
		h.backend.addTrack("scsearch:"+n, track(n))
	}
	c := connected(t, h, "g1")
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, c.LoadTrack(ctx, n, newEvent(SourceText)))
	}

	t.Run("stale handle ignored", func(t *testing.T) {
		c.OnTrackEnd(ctx, "b", true)
		cur, _ := c.NowPlaying()
		assert.Equal(t, "a", cur.Handle)
	})

	t.Run("finished track advances", func(t *testing.T) {
		c.OnTrackEnd(ctx, "a", true)
		cur, _ := c.NowPlaying()
		assert.Equal(t, "b", cur.Handle)
	})

	t.Run("replaced track does not advance", func(t *testing.T) {
		c.OnTrackEnd(ctx, "b", false)
		_, ok := c.NowPlaying()
		assert.False(t, ok)
		assert.Equal(t, []string{"c"}, handles(c.Queue()))
	})
}

func TestQueuedOriginAnnouncedOnStart(t *testing.T) {
	h := newHarness(Config{})
	for _, n := range []string{"a", "b", "c"} {
		h.backend.addTrack("scsearch:"+n, track(n))
	}
	c := connected(t, h, "g1")
	ctx := context.Background()

	require.NoError(t, c.LoadTrack(ctx, "a", newEvent(SourceSlash)))
	evB := newEvent(SourceSlash)
	require.NoError(t, c.LoadTrack(ctx, "b", evB))
	evC := newEvent(SourceMenu)
	require.NoError(t, c.LoadTrack(ctx, "c", evC))
	assert.Equal(t, i18n.KeyQueued+" [c](https://example.com/c) 2", evC.lastStatus())

	c.OnTrackEnd(ctx, "a", true)
	assert.Equal(t, i18n.KeyNowPlaying+" [b](https://example.com/b)", evB.lastStatus())

	evC.close()
	before := len(evC.statuses)
	c.OnTrackEnd(ctx, "b", true)
	cur, _ := c.NowPlaying()
	assert.Equal(t, "c", cur.Handle)
	assert.Len(t, evC.statuses, before, "closed events receive no updates")
}

func TestVolume(t *testing.T) {
	h := newHarness(Config{})
	c := h.reg.Get("g1")
	ctx := context.Background()

	var uv *UserVisibleError
	require.ErrorAs(t, c.SetVolume(ctx, 151), &uv)
	assert.Equal(t, i18n.KeyVolumeRange, uv.Key)
	require.ErrorAs(t, c.SetVolume(ctx, -1), &uv)

	require.NoError(t, c.SetVolume(ctx, 40))
	assert.Equal(t, 40, c.Volume())
	assert.Empty(t, h.backend.volumes, "no backend call while disconnected")

	c.SetVolumeLocked(true)
	require.ErrorAs(t, c.SetVolume(ctx, 80), &uv)
	assert.Equal(t, i18n.KeyVolumeLocked, uv.Key)
	assert.Equal(t, 40, c.Volume())

	c.SetVolumeLocked(false)
	require.NoError(t, c.Connect(ctx, "voice-1"))
	require.NoError(t, c.SetVolume(ctx, 120))
	assert.Equal(t, []int{40, 120}, h.backend.volumes)
}

func TestObserveTracksLatestChannelAndLocale(t *testing.T) {
	h := newHarness(Config{})
	c := h.reg.Get("g1")

	ev := newEvent(SourceText)
	ev.channel, ev.locale = "text-9", "de"
	c.Observe(ev)
	c.Observe(&fakeEvent{})

	assert.Equal(t, "text-9", c.LastTextChannel())
	assert.Equal(t, "de", c.Locale())
}
