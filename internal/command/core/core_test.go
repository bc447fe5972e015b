package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/resume"
	"github.com/keshon/vinny/internal/storage"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

type keyTranslator struct{}

func (keyTranslator) Translate(_, key string, args ...any) string {
	parts := []string{key}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}

type event struct {
	replies []string
}

func (e *event) Reply(text string) error    { e.replies = append(e.replies, text); return nil }
func (e *event) UpdateStatus(string) error  { return nil }
func (e *event) Locale() string             { return "en-US" }
func (e *event) RequestingUser() voice.User { return voice.User{ID: "owner"} }
func (e *event) TextChannel() string        { return "text" }
func (e *event) Source() voice.Source       { return voice.SourceText }
func (e *event) Closed() bool               { return false }

type fakeCommand struct {
	name     string
	category string
	owner    bool
}

func (c *fakeCommand) Name() string                               { return c.name }
func (c *fakeCommand) Description() string                        { return "does " + c.name }
func (c *fakeCommand) Category() string                           { return c.category }
func (c *fakeCommand) OwnerOnly() bool                            { return c.owner }
func (c *fakeCommand) UserPermissions() []int64                   { return nil }
func (c *fakeCommand) Run(context.Context, *cmd.Invocation) error { return nil }

func run(t *testing.T, c cmd.Command, args ...string) (*event, error) {
	t.Helper()
	ev := &event{}
	err := c.Run(context.Background(), &cmd.Invocation{
		Name: c.Name(),
		Args: args,
		Data: &command.Context{Event: ev, GuildID: "g1"},
	})
	return ev, err
}

func TestHelpGroupsByCategory(t *testing.T) {
	reg := cmd.NewRegistry()
	help := &HelpCommand{Commands: reg, Translator: keyTranslator{}, Prefix: "~"}
	for _, c := range []cmd.Command{
		help,
		&fakeCommand{name: "skip", category: config.CategoryMusic},
		&fakeCommand{name: "play", category: config.CategoryMusic},
		&fakeCommand{name: "maintenance", category: config.CategoryMaintenance},
		&fakeCommand{name: "reboot", category: config.CategoryMaintenance, owner: true},
	} {
		require.NoError(t, reg.Register(c))
	}

	ev, err := run(t, help)
	require.NoError(t, err)
	require.Len(t, ev.replies, 1)
	out := ev.replies[0]

	assert.True(t, strings.HasPrefix(out, i18n.KeyHelpHeader+" ~"))
	assert.Contains(t, out, "`help` (h, commands) - Get a list of available commands")
	assert.NotContains(t, out, "reboot", "owner-only commands are hidden")

	info := strings.Index(out, config.CategoryInformation)
	music := strings.Index(out, config.CategoryMusic)
	maint := strings.Index(out, config.CategoryMaintenance)
	assert.True(t, info < music && music < maint, "categories follow their weights")
	assert.Less(t, strings.Index(out, "`play`"), strings.Index(out, "`skip`"))
}

func TestHelpFlat(t *testing.T) {
	reg := cmd.NewRegistry()
	help := &HelpCommand{Commands: reg, Translator: keyTranslator{}, Prefix: "~"}
	require.NoError(t, reg.Register(help))
	require.NoError(t, reg.Register(&fakeCommand{name: "play", category: config.CategoryMusic}))

	ev, err := run(t, help, "flat")
	require.NoError(t, err)
	assert.NotContains(t, ev.replies[0], config.CategoryMusic)
	assert.Contains(t, ev.replies[0], "`play` - does play")
}

type history []storage.CommandHistory

func (h history) CommandsHistory(string) ([]storage.CommandHistory, error) { return h, nil }

func TestMaintenancePing(t *testing.T) {
	c := &MaintenanceCommand{
		Latency:    func() time.Duration { return 42 * time.Millisecond },
		Translator: keyTranslator{},
	}
	ev, err := run(t, c, "ping")
	require.NoError(t, err)
	assert.Equal(t, []string{i18n.KeyPong + " 42"}, ev.replies)

	ev, err = run(t, c)
	require.NoError(t, err)
	assert.Equal(t, []string{i18n.KeyPong + " 42"}, ev.replies, "ping is the default")
}

func TestMaintenanceHistory(t *testing.T) {
	now := time.Now()
	c := &MaintenanceCommand{
		Translator: keyTranslator{},
		History: history{
			{Command: "play", Source: "slash", Username: "alice", UserID: "u1", Datetime: now.Add(-time.Minute)},
			{Command: "skip", Source: "text", Username: "bob", UserID: "u2", Datetime: now},
		},
	}
	ev, err := run(t, c, "history")
	require.NoError(t, err)
	require.Len(t, ev.replies, 1)
	out := ev.replies[0]
	assert.True(t, strings.HasPrefix(out, i18n.KeyHistoryHeader))
	assert.Less(t, strings.Index(out, "`skip`"), strings.Index(out, "`play`"), "newest first")

	empty := &MaintenanceCommand{Translator: keyTranslator{}, History: history{}}
	ev, err = run(t, empty, "history")
	require.NoError(t, err)
	assert.Equal(t, []string{i18n.KeyHistoryEmpty}, ev.replies)
}

type rebooter struct {
	err   error
	calls int
}

func (r *rebooter) Reboot(context.Context, voice.ControlEvent) (resume.SweepReport, error) {
	r.calls++
	return resume.SweepReport{}, r.err
}

func TestRebootShutsDownAfterSweep(t *testing.T) {
	r := &rebooter{}
	var down int
	c := &RebootCommand{Sweeper: r, Shutdown: func() { down++ }}

	_, err := run(t, c)
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, 1, down)
	assert.True(t, c.OwnerOnly())
	_, isSlash := cmd.Command(c).(command.SlashProvider)
	assert.False(t, isSlash, "reboot is text only")
}

func TestRebootKeepsRunningWhenSweepIsCancelled(t *testing.T) {
	r := &rebooter{err: context.Canceled}
	var down int
	c := &RebootCommand{Sweeper: r, Shutdown: func() { down++ }}

	_, err := run(t, c)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, down)
}
