package resume

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/voice"
)

type memStore struct {
	mu        sync.Mutex
	snaps     map[string]voice.ResumeSnapshot
	failPut   map[string]bool
	removeAll error
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[string]voice.ResumeSnapshot), failPut: make(map[string]bool)}
}

func (m *memStore) Put(snap voice.ResumeSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut[snap.GuildID] {
		return errors.New("disk full")
	}
	m.snaps[snap.GuildID] = snap
	return nil
}

func (m *memStore) Get(guildID string) (voice.ResumeSnapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[guildID]
	return snap, ok, nil
}

func (m *memStore) Remove(guildID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, guildID)
	return nil
}

func (m *memStore) RemoveAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeAll != nil {
		return m.removeAll
	}
	clear(m.snaps)
	return nil
}

func (m *memStore) All() ([]voice.ResumeSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]voice.ResumeSnapshot, 0, len(m.snaps))
	for _, s := range m.snaps {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b voice.ResumeSnapshot) int { return strings.Compare(a.GuildID, b.GuildID) })
	return out, nil
}

type sentMessage struct {
	channel string
	text    string
}

type fakeMessenger struct {
	mu       sync.Mutex
	sent     []sentMessage
	fail     map[string]error
	attempts map[string]int
}

func (f *fakeMessenger) SendMessage(_ context.Context, channelID, text string) (voice.MessageHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attempts == nil {
		f.attempts = make(map[string]int)
	}
	f.attempts[channelID]++
	if err := f.fail[channelID]; err != nil {
		return voice.MessageHandle{}, err
	}
	f.sent = append(f.sent, sentMessage{channelID, text})
	return voice.MessageHandle{ChannelID: channelID, MessageID: fmt.Sprint(len(f.sent))}, nil
}

func (f *fakeMessenger) EditMessage(context.Context, voice.MessageHandle, string) error { return nil }
func (f *fakeMessenger) DeleteMessage(context.Context, voice.MessageHandle) error       { return nil }

func (f *fakeMessenger) to(channel string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		if m.channel == channel {
			out = append(out, m.text)
		}
	}
	return out
}

// statusError is a REST failure with an HTTP status.
type statusError int

func (e statusError) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusError) StatusCode() int { return int(e) }

// backend resolves "scsearch:<name>" to a track with handle <name>.
type backend struct{}

func (backend) LoadTracks(_ context.Context, query string) (voice.LoadResult, error) {
	name := strings.TrimPrefix(query, "scsearch:")
	return voice.LoadResult{Kind: voice.LoadTrack, Tracks: []voice.Track{{Handle: name, Title: name}}}, nil
}
func (backend) Play(context.Context, string, voice.Track) error { return nil }
func (backend) Stop(context.Context, string) error              { return nil }
func (backend) SetPaused(context.Context, string, bool) error   { return nil }
func (backend) SetVolume(context.Context, string, int) error    { return nil }

type gateway struct {
	fail map[string]bool
}

func (g gateway) JoinVoice(_ context.Context, guildID, _ string) error {
	if g.fail[guildID] {
		return errors.New("no access")
	}
	return nil
}
func (gateway) LeaveVoice(context.Context, string) error { return nil }

type keyTranslator struct{}

func (keyTranslator) Translate(_ string, key string, args ...any) string {
	parts := []string{key}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}

type actor struct {
	mu      sync.Mutex
	replies []string
}

func (a *actor) Reply(text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replies = append(a.replies, text)
	return nil
}
func (a *actor) UpdateStatus(text string) error { return a.Reply(text) }
func (*actor) Locale() string                   { return "en-US" }
func (*actor) RequestingUser() voice.User       { return voice.User{ID: "owner"} }
func (*actor) TextChannel() string              { return "admin" }
func (*actor) Source() voice.Source             { return voice.SourceText }
func (*actor) Closed() bool                     { return false }

// textEvent is a requester in a guild's text channel.
type textEvent struct {
	actor
	channel string
}

func (e *textEvent) TextChannel() string { return e.channel }

func newRegistry(gw gateway) *voice.Registry {
	return voice.NewRegistry(voice.Config{}, voice.Deps{
		Backend:    backend{},
		Gateway:    gw,
		Translator: keyTranslator{},
		Logger:     zerolog.Nop(),
	})
}

// playing connects guildID and loads tracks into it.
func playing(reg *voice.Registry, guildID string, tracks ...string) error {
	conn := reg.Get(guildID)
	ctx := context.Background()
	if err := conn.Connect(ctx, "voice-"+guildID); err != nil {
		return err
	}
	ev := &textEvent{channel: "text-" + guildID}
	for _, t := range tracks {
		if err := conn.LoadTrack(ctx, t, ev); err != nil {
			return err
		}
	}
	return nil
}
