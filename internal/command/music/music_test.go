package music

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/playlist"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

const guild = "g1"

type backend struct {
	mu     sync.Mutex
	played []string
	paused []bool
}

func (b *backend) LoadTracks(_ context.Context, query string) (voice.LoadResult, error) {
	if strings.Contains(query, "nothing") {
		return voice.LoadResult{Kind: voice.LoadNoMatches}, nil
	}
	name := query[strings.LastIndexAny(query, ":/")+1:]
	return voice.LoadResult{Kind: voice.LoadTrack, Tracks: []voice.Track{{
		Handle: "h-" + name,
		URI:    "https://example.com/" + name,
		Title:  name,
	}}}, nil
}

func (b *backend) Play(_ context.Context, _ string, t voice.Track) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.played = append(b.played, t.Handle)
	return nil
}

func (b *backend) Stop(context.Context, string) error { return nil }

func (b *backend) SetPaused(_ context.Context, _ string, p bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = append(b.paused, p)
	return nil
}

func (b *backend) SetVolume(context.Context, string, int) error { return nil }

type gateway struct{}

func (gateway) JoinVoice(context.Context, string, string) error { return nil }
func (gateway) LeaveVoice(context.Context, string) error        { return nil }

type keyTranslator struct{}

func (keyTranslator) Translate(_, key string, args ...any) string {
	parts := []string{key}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}

type locator map[string]string

func (l locator) UserVoiceChannel(_, userID string) (string, bool) {
	ch, ok := l[userID]
	return ch, ok
}

// event is a slash-like ControlEvent that can defer, show menus and delete
// its origin.
type event struct {
	user      string
	replies   []string
	statuses  []string
	menus     []discordgo.SelectMenu
	deferred  bool
	deleted   bool
	deleteErr error
}

func (e *event) Reply(text string) error        { e.replies = append(e.replies, text); return nil }
func (e *event) UpdateStatus(text string) error { e.statuses = append(e.statuses, text); return nil }
func (e *event) Locale() string                 { return "en-US" }
func (e *event) RequestingUser() voice.User     { return voice.User{ID: e.user} }
func (e *event) TextChannel() string            { return "text" }
func (e *event) Source() voice.Source           { return voice.SourceSlash }
func (e *event) Closed() bool                   { return false }
func (e *event) Defer() error                   { e.deferred = true; return nil }
func (e *event) DeleteOrigin() error {
	if e.deleteErr != nil {
		return e.deleteErr
	}
	e.deleted = true
	return nil
}

func (e *event) ReplyMenu(text string, menu discordgo.SelectMenu) error {
	e.replies = append(e.replies, text)
	e.menus = append(e.menus, menu)
	return nil
}

func (e *event) lastStatus() string {
	if len(e.statuses) == 0 {
		return ""
	}
	return e.statuses[len(e.statuses)-1]
}

type harness struct {
	backend   *backend
	registry  *voice.Registry
	playlists *playlist.Store
	commands  *cmd.Registry
	logs      *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := &backend{}
	reg := voice.NewRegistry(voice.Config{}, voice.Deps{
		Backend:    b,
		Gateway:    gateway{},
		Translator: keyTranslator{},
		Logger:     zerolog.Nop(),
	})
	store, err := playlist.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logs := &bytes.Buffer{}
	commands := cmd.NewRegistry()
	for _, c := range Commands(Deps{
		Registry:   reg,
		Voice:      locator{"u1": "voice-1"},
		Playlists:  store,
		Translator: keyTranslator{},
		Logger:     zerolog.New(logs),
	}) {
		require.NoError(t, commands.Register(c))
	}
	return &harness{backend: b, registry: reg, playlists: store, commands: commands, logs: logs}
}

func (h *harness) run(t *testing.T, ev *event, name string, args ...string) error {
	t.Helper()
	c := h.commands.Get(name)
	require.NotNil(t, c, name)
	return c.Run(context.Background(), &cmd.Invocation{
		Name: name,
		Args: args,
		Data: &command.Context{Event: ev, GuildID: guild},
	})
}

func (h *harness) menu(t *testing.T, ev *event, customID string, values ...string) error {
	t.Helper()
	c := command.FindComponent(h.commands, customID)
	require.NotNil(t, c, customID)
	return c.Run(context.Background(), &cmd.Invocation{
		Args: values,
		Data: &command.Context{Event: ev, GuildID: guild, CustomID: customID},
	})
}

func userVisibleKey(t *testing.T, err error) string {
	t.Helper()
	var uv *voice.UserVisibleError
	require.ErrorAs(t, err, &uv)
	return uv.Key
}

func TestPlayJoinsAndStarts(t *testing.T) {
	h := newHarness(t)
	ev := &event{user: "u1"}

	require.NoError(t, h.run(t, ev, "p", "lofi", "beats"))

	assert.True(t, ev.deferred)
	assert.Equal(t, []string{"h-lofi beats"}, h.backend.played)
	assert.Equal(t, i18n.KeyNowPlaying+" [lofi beats](https://example.com/lofi beats)", ev.lastStatus())

	conn, ok := h.registry.Lookup(guild)
	require.True(t, ok)
	assert.Equal(t, "voice-1", conn.VoiceChannel())
}

func TestPlayOutsideVoice(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, &event{user: "u2"}, "play", "lofi")
	assert.Equal(t, i18n.KeyNotInVoice, userVisibleKey(t, err))
	assert.Empty(t, h.backend.played)
}

func TestPlayWithoutInput(t *testing.T) {
	h := newHarness(t)

	ev := &event{user: "u2"}
	require.NoError(t, h.run(t, ev, "play"))
	require.Len(t, ev.replies, 1)
	assert.True(t, strings.HasPrefix(ev.replies[0], i18n.KeyPlayHelp), ev.replies[0])

	require.NoError(t, h.run(t, &event{user: "u1"}, "play", "song"))
	require.NoError(t, h.run(t, &event{user: "u1"}, "pause"))

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "play"))
	assert.Equal(t, []string{i18n.KeyResumed}, ev.replies)
	assert.Equal(t, []bool{true, false}, h.backend.paused)
}

func TestSkipAndStop(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, &event{user: "u1"}, "play", "one"))
	require.NoError(t, h.run(t, &event{user: "u1"}, "play", "two"))

	ev := &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "next"))
	assert.Equal(t, []string{i18n.KeySkipped}, ev.replies)
	assert.Equal(t, []string{"h-one", "h-two"}, h.backend.played)

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "stop"))
	assert.Equal(t, []string{i18n.KeyStopped}, ev.replies)

	conn, _ := h.registry.Lookup(guild)
	assert.Equal(t, voice.StateDisconnected, conn.State())

	err := h.run(t, &event{user: "u1"}, "skip")
	assert.Equal(t, i18n.KeyNothingPlaying, userVisibleKey(t, err))
}

func TestVolume(t *testing.T) {
	h := newHarness(t)

	ev := &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "vol"))
	assert.Equal(t, []string{i18n.KeyVolumeSet + " 100"}, ev.replies)

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "volume", "40%"))
	assert.Equal(t, []string{i18n.KeyVolumeSet + " 40"}, ev.replies)

	assert.Equal(t, i18n.KeyVolumeRange, userVisibleKey(t, h.run(t, &event{user: "u1"}, "volume", "loud")))
	assert.Equal(t, i18n.KeyVolumeRange, userVisibleKey(t, h.run(t, &event{user: "u1"}, "volume", "151")))

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "lockvolume"))
	assert.Equal(t, []string{i18n.KeyVolumeLockOn}, ev.replies)
	assert.Equal(t, i18n.KeyVolumeLocked, userVisibleKey(t, h.run(t, &event{user: "u1"}, "volume", "10")))

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "lockvolume", "off"))
	assert.Equal(t, []string{i18n.KeyVolumeLockOff}, ev.replies)
	require.NoError(t, h.run(t, &event{user: "u1"}, "volume", "10"))
}

func TestQueueListing(t *testing.T) {
	h := newHarness(t)

	ev := &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "queue"))
	assert.Equal(t, []string{i18n.KeyQueueEmpty}, ev.replies)

	for i := range queuePageSize + 3 {
		require.NoError(t, h.run(t, &event{user: "u1"}, "play", fmt.Sprintf("t%d", i)))
	}

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "q"))
	require.Len(t, ev.replies, 1)
	lines := strings.Split(ev.replies[0], "\n")
	assert.Equal(t, i18n.KeyQueueHeader+" [t0](https://example.com/t0) 12", lines[0])
	assert.Equal(t, "`1.` [t1](https://example.com/t1)", lines[1])
	assert.Equal(t, i18n.KeyQueueMore+" 2", lines[len(lines)-1])
}

func TestPlaylistSaveLoadDelete(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, &event{user: "u1"}, "play", "a"))
	require.NoError(t, h.run(t, &event{user: "u1"}, "play", "b"))

	ev := &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "playlist", "save", "Road", "Trip"))
	assert.Equal(t, []string{i18n.KeyPlaylistSaved + " 2 Road Trip"}, ev.replies)

	require.NoError(t, h.run(t, &event{user: "u1"}, "stop"))

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "pl"))
	require.Len(t, ev.menus, 1)
	menu := ev.menus[0]
	assert.Equal(t, "loadplaylist-"+guild, menu.CustomID)
	require.Len(t, menu.Options, 1)
	assert.Equal(t, "Road Trip", menu.Options[0].Label)

	pick := &event{user: "u1"}
	require.NoError(t, h.menu(t, pick, menu.CustomID, menu.Options[0].Value))
	assert.True(t, pick.deleted, "menu is single use")
	assert.Equal(t, []string{"h-a", "h-a"}, h.backend.played)

	conn, _ := h.registry.Lookup(guild)
	assert.Len(t, conn.Queue(), 1)

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "playlist", "delete", "road trip"))
	assert.Equal(t, []string{i18n.KeyPlaylistDeleted + " Road Trip"}, ev.replies)

	ev = &event{user: "u1"}
	require.NoError(t, h.run(t, ev, "playlist", "load"))
	assert.Equal(t, []string{i18n.KeyPlaylistNone}, ev.replies)
}

func TestPlaylistMenuForAnotherGuild(t *testing.T) {
	h := newHarness(t)
	p, err := h.playlists.SavePlaylist(context.Background(), "other", "theirs", "u9",
		[]playlist.Track{{Ref: "https://example.com/x"}})
	require.NoError(t, err)

	pick := &event{user: "u1"}
	err = h.menu(t, pick, "loadplaylist-"+guild, fmt.Sprint(p.ID))
	assert.Equal(t, i18n.KeyPlaylistNotFound, userVisibleKey(t, err))
	assert.True(t, pick.deleted, "menu is removed on failure too")
	assert.Empty(t, h.backend.played)
}

func TestPlaylistMenuRemovalFailureIsLogged(t *testing.T) {
	h := newHarness(t)
	p, err := h.playlists.SavePlaylist(context.Background(), guild, "mix", "u1",
		[]playlist.Track{{Ref: "https://example.com/a"}})
	require.NoError(t, err)

	pick := &event{user: "u1", deleteErr: fmt.Errorf("unknown message")}
	require.NoError(t, h.menu(t, pick, "loadplaylist-"+guild, fmt.Sprint(p.ID)))

	assert.False(t, pick.deleted)
	assert.Contains(t, h.logs.String(), `"level":"warn"`)
	assert.Contains(t, h.logs.String(), "failed to remove playlist menu")
	assert.Contains(t, h.logs.String(), "unknown message")
}

func TestPlaylistSaveNeedsTracksAndName(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, i18n.KeyPlaylistName, userVisibleKey(t, h.run(t, &event{user: "u1"}, "playlist", "save")))
	assert.Equal(t, i18n.KeyPlaylistEmpty, userVisibleKey(t, h.run(t, &event{user: "u1"}, "playlist", "save", "x")))
	assert.Equal(t, i18n.KeyPlaylistNotFound, userVisibleKey(t, h.run(t, &event{user: "u1"}, "playlist", "delete", "x")))
}

func TestSlashDefinitions(t *testing.T) {
	h := newHarness(t)
	defs := command.SlashDefinitions(h.commands)

	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"lockvolume", "pause", "play", "playlist", "queue", "skip", "stop", "volume"}, names)
}
