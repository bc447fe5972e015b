package music

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

// queuePageSize is how many upcoming tracks the queue listing shows.
const queuePageSize = 10

type QueueCommand struct {
	base
	Deps
}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the current track and what plays next" }
func (c *QueueCommand) Aliases() []string   { return []string{"q"} }

func (c *QueueCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.Name(), Description: c.Description()}
}

func (c *QueueCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	conn, ok := c.Registry.Lookup(cc.GuildID)
	if !ok {
		return c.say(cc.Event, i18n.KeyQueueEmpty)
	}
	return cc.Event.Reply(c.render(cc.Event.Locale(), conn))
}

func (c *QueueCommand) render(locale string, conn *voice.Connection) string {
	current, playing := conn.NowPlaying()
	queue := conn.Queue()
	if !playing && len(queue) == 0 {
		return c.Translator.Translate(locale, i18n.KeyQueueEmpty)
	}

	now := "-"
	if playing {
		now = current.Display()
	}
	var b strings.Builder
	b.WriteString(c.Translator.Translate(locale, i18n.KeyQueueHeader, now, len(queue)))
	for i, t := range queue {
		if i == queuePageSize {
			b.WriteString("\n")
			b.WriteString(c.Translator.Translate(locale, i18n.KeyQueueMore, len(queue)-queuePageSize))
			break
		}
		fmt.Fprintf(&b, "\n`%d.` %s", i+1, t.Display())
	}
	return b.String()
}
