package music

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

type VolumeCommand struct {
	base
	Deps
}

func (c *VolumeCommand) Name() string        { return "volume" }
func (c *VolumeCommand) Description() string { return "Show or change the playback volume" }
func (c *VolumeCommand) Aliases() []string   { return []string{"vol"} }

func (c *VolumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minVolume := float64(voice.MinVolume)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "level",
				Description: "Volume level",
				MinValue:    &minVolume,
				MaxValue:    voice.MaxVolume,
			},
		},
	}
}

func (c *VolumeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	conn := c.Registry.Get(cc.GuildID)
	conn.Observe(cc.Event)

	if len(inv.Args) == 0 {
		return c.say(cc.Event, i18n.KeyVolumeSet, conn.Volume())
	}
	level, err := strconv.Atoi(strings.TrimSuffix(inv.Args[0], "%"))
	if err != nil {
		return voice.NewUserVisible(i18n.KeyVolumeRange, voice.MinVolume, voice.MaxVolume)
	}
	if err := conn.SetVolume(ctx, level); err != nil {
		return err
	}
	return c.say(cc.Event, i18n.KeyVolumeSet, level)
}

type LockVolumeCommand struct {
	base
	Deps
}

func (c *LockVolumeCommand) Name() string        { return "lockvolume" }
func (c *LockVolumeCommand) Description() string { return "Lock or unlock the volume for this server" }

func (c *LockVolumeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild, discordgo.PermissionVoiceMuteMembers}
}

func (c *LockVolumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "locked",
				Description: "Lock the volume, toggles when omitted",
			},
		},
	}
}

func (c *LockVolumeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	conn := c.Registry.Get(cc.GuildID)
	conn.Observe(cc.Event)

	locked := !conn.VolumeLocked()
	if len(inv.Args) > 0 {
		switch strings.ToLower(inv.Args[0]) {
		case "on", "true", "lock", "yes":
			locked = true
		case "off", "false", "unlock", "no":
			locked = false
		}
	}
	conn.SetVolumeLocked(locked)
	if locked {
		return c.say(cc.Event, i18n.KeyVolumeLockOn)
	}
	return c.say(cc.Event, i18n.KeyVolumeLockOff)
}
