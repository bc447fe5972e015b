// Package command adapts bot commands to Discord: the invocation payload, the
// provider interfaces the Discord layer registers and dispatches on, and the
// registration helpers.
package command

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

var ErrNoContext = errors.New("invocation carries no command context")

// Context is the Invocation payload built by the Discord layer. Event is a
// *control.Slash, *control.Text or *control.Menu.
type Context struct {
	Event    voice.ControlEvent
	GuildID  string
	CustomID string // set for component interactions only
}

// FromInvocation returns the Discord context of inv.
func FromInvocation(inv *cmd.Invocation) (*Context, error) {
	if inv == nil {
		return nil, ErrNoContext
	}
	c, ok := inv.Data.(*Context)
	if !ok || c == nil || c.Event == nil {
		return nil, ErrNoContext
	}
	return c, nil
}

// SlashProvider is implemented by commands exposed as application commands.
// Commands without it are only reachable by prefix text.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// ComponentHandler is implemented by commands that own message components
// whose custom ID starts with ComponentPrefix.
type ComponentHandler interface {
	ComponentPrefix() string
}

// DiscordMeta is read by middleware and help without depending on concrete
// command types.
type DiscordMeta interface {
	Category() string
	OwnerOnly() bool
	// UserPermissions lists permissions of which the user needs at least one.
	UserPermissions() []int64
}

// Say replies on ev with a translated message.
func Say(ev voice.ControlEvent, tr voice.Translator, key string, args ...any) error {
	return ev.Reply(tr.Translate(ev.Locale(), key, args...))
}
