package music

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/pkg/cmd"
)

type PauseCommand struct {
	base
	Deps
}

func (c *PauseCommand) Name() string        { return "pause" }
func (c *PauseCommand) Description() string { return "Pause playback" }

func (c *PauseCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.Name(), Description: c.Description()}
}

func (c *PauseCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	conn := c.Registry.Get(cc.GuildID)
	conn.Observe(cc.Event)
	if err := conn.Pause(ctx); err != nil {
		return err
	}
	return c.say(cc.Event, i18n.KeyPaused)
}

type SkipCommand struct {
	base
	Deps
}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip to the next track" }
func (c *SkipCommand) Aliases() []string   { return []string{"next", "s"} }

func (c *SkipCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.Name(), Description: c.Description()}
}

func (c *SkipCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	conn := c.Registry.Get(cc.GuildID)
	conn.Observe(cc.Event)
	if err := conn.Skip(ctx); err != nil {
		return err
	}
	return c.say(cc.Event, i18n.KeySkipped)
}

type StopCommand struct {
	base
	Deps
}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback, clear the queue and leave" }
func (c *StopCommand) Aliases() []string   { return []string{"leave"} }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.Name(), Description: c.Description()}
}

func (c *StopCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	conn := c.Registry.Get(cc.GuildID)
	conn.Observe(cc.Event)
	if err := conn.Disconnect(ctx); err != nil {
		return err
	}
	return c.say(cc.Event, i18n.KeyStopped)
}
