package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type fakeBackend struct {
	mu      sync.Mutex
	results map[string]LoadResult
	failing map[string]bool // handles Play refuses
	loads   []string
	played  []string
	stops   int
	paused  []bool
	volumes []int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		results: make(map[string]LoadResult),
		failing: make(map[string]bool),
	}
}

func (b *fakeBackend) addTrack(query string, t Track) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[query] = LoadResult{Kind: LoadTrack, Tracks: []Track{t}}
}

func (b *fakeBackend) addPlaylist(query, name string, tracks ...Track) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[query] = LoadResult{Kind: LoadPlaylist, Tracks: tracks, PlaylistName: name}
}

func (b *fakeBackend) LoadTracks(_ context.Context, query string) (LoadResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loads = append(b.loads, query)
	if res, ok := b.results[query]; ok {
		return res, nil
	}
	return LoadResult{Kind: LoadNoMatches}, nil
}

func (b *fakeBackend) Play(_ context.Context, _ string, t Track) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing[t.Handle] {
		return errors.New("track refused")
	}
	b.played = append(b.played, t.Handle)
	return nil
}

func (b *fakeBackend) Stop(context.Context, string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stops++
	return nil
}

func (b *fakeBackend) SetPaused(_ context.Context, _ string, paused bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = append(b.paused, paused)
	return nil
}

func (b *fakeBackend) SetVolume(_ context.Context, _ string, v int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volumes = append(b.volumes, v)
	return nil
}

func (b *fakeBackend) loadCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.loads)
}

func (b *fakeBackend) playedHandles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.played...)
}

type fakeGateway struct {
	mu     sync.Mutex
	joined map[string]string
	err    error
}

func (g *fakeGateway) JoinVoice(_ context.Context, guildID, channelID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	if g.joined == nil {
		g.joined = make(map[string]string)
	}
	g.joined[guildID] = channelID
	return nil
}

func (g *fakeGateway) LeaveVoice(_ context.Context, guildID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.joined, guildID)
	return nil
}

// keyTranslator renders "KEY arg1 arg2" so tests can match on keys.
type keyTranslator struct{}

func (keyTranslator) Translate(_ string, key string, args ...any) string {
	parts := []string{key}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}

type fakeEvent struct {
	mu       sync.Mutex
	source   Source
	user     User
	channel  string
	locale   string
	closed   bool
	replies  []string
	statuses []string
}

func newEvent(source Source) *fakeEvent {
	return &fakeEvent{
		source:  source,
		user:    User{ID: "u1", Name: "alice"},
		channel: "text-1",
		locale:  "en-US",
	}
}

func (e *fakeEvent) Reply(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replies = append(e.replies, text)
	return nil
}

func (e *fakeEvent) UpdateStatus(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statuses = append(e.statuses, text)
	return nil
}

func (e *fakeEvent) Locale() string       { return e.locale }
func (e *fakeEvent) RequestingUser() User { return e.user }
func (e *fakeEvent) TextChannel() string  { return e.channel }
func (e *fakeEvent) Source() Source       { return e.source }

func (e *fakeEvent) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *fakeEvent) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

func (e *fakeEvent) lastStatus() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.statuses) == 0 {
		return ""
	}
	return e.statuses[len(e.statuses)-1]
}

func (e *fakeEvent) lastReply() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.replies) == 0 {
		return ""
	}
	return e.replies[len(e.replies)-1]
}

func track(h string) Track {
	return Track{Handle: h, URI: "https://example.com/" + h, Title: h}
}

type harness struct {
	backend *fakeBackend
	gateway *fakeGateway
	reg     *Registry
}

func newHarness(cfg Config) *harness {
	h := &harness{backend: newFakeBackend(), gateway: &fakeGateway{}}
	h.reg = NewRegistry(cfg, Deps{
		Backend:    h.backend,
		Gateway:    h.gateway,
		Translator: keyTranslator{},
		Logger:     zerolog.Nop(),
	})
	return h
}
