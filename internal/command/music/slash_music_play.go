package music

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/pkg/cmd"
)

type PlayCommand struct {
	base
	Deps
}

func (c *PlayCommand) Name() string { return "play" }
func (c *PlayCommand) Description() string {
	return "Play a track or playlist, or resume a paused stream"
}
func (c *PlayCommand) Aliases() []string { return []string{"p"} }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "input",
				Description: "Link or search query, empty to resume",
			},
		},
	}
}

func (c *PlayCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	input := strings.TrimSpace(strings.Join(inv.Args, " "))

	if input == "" {
		// resume or usage help, neither needs voice
		return c.Registry.Get(cc.GuildID).Play(ctx, "", cc.Event)
	}

	if err := deferIfInteraction(cc.Event); err != nil {
		return err
	}
	conn, err := c.join(ctx, cc)
	if err != nil {
		return err
	}
	return conn.Play(ctx, input, cc.Event)
}
