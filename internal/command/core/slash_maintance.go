package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/storage"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

// HistorySource reads the recorded commands of a guild, oldest first.
type HistorySource interface {
	CommandsHistory(guildID string) ([]storage.CommandHistory, error)
}

type MaintenanceCommand struct {
	Latency    func() time.Duration
	History    HistorySource
	Translator voice.Translator
}

func (c *MaintenanceCommand) Name() string        { return "maintenance" }
func (c *MaintenanceCommand) Description() string { return "Bot maintenance commands" }
func (c *MaintenanceCommand) Category() string    { return config.CategoryMaintenance }
func (c *MaintenanceCommand) OwnerOnly() bool     { return false }
func (c *MaintenanceCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

func (c *MaintenanceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "ping",
				Description: "Check bot latency",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "history",
				Description: "Show the most recent commands of this server",
			},
		},
	}
}

func (c *MaintenanceCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	sub := "ping"
	if len(inv.Args) > 0 {
		sub = strings.ToLower(inv.Args[0])
	}
	switch sub {
	case "ping":
		var latency time.Duration
		if c.Latency != nil {
			latency = c.Latency()
		}
		return command.Say(cc.Event, c.Translator, i18n.KeyPong, latency.Milliseconds())
	case "history":
		return c.runHistory(cc)
	default:
		return cc.Event.Reply(fmt.Sprintf("Unknown subcommand: %s", sub))
	}
}

func (c *MaintenanceCommand) runHistory(cc *command.Context) error {
	history, err := c.History.CommandsHistory(cc.GuildID)
	if err != nil {
		return fmt.Errorf("failed to read command history: %w", err)
	}
	if len(history) == 0 {
		return command.Say(cc.Event, c.Translator, i18n.KeyHistoryEmpty)
	}

	var sb strings.Builder
	sb.WriteString(c.Translator.Translate(cc.Event.Locale(), i18n.KeyHistoryHeader))
	sb.WriteString("\n")
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		fmt.Fprintf(&sb, "`%s` %s **%s** (%s) <t:%d:R>\n", h.Command, h.Source, h.Username, h.UserID, h.Datetime.Unix())
	}
	return cc.Event.Reply(strings.TrimSpace(sb.String()))
}
