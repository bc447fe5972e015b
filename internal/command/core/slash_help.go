// Package core holds the informational and maintenance commands.
package core

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

type HelpCommand struct {
	Commands   *cmd.Registry
	Translator voice.Translator
	Prefix     string
}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "Get a list of available commands" }
func (c *HelpCommand) Aliases() []string        { return []string{"h", "commands"} }
func (c *HelpCommand) Category() string         { return config.CategoryInformation }
func (c *HelpCommand) OwnerOnly() bool          { return false }
func (c *HelpCommand) UserPermissions() []int64 { return nil }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "category",
				Description: "View commands grouped by category",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "flat",
				Description: "View all commands as a flat list",
			},
		},
	}
}

func (c *HelpCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	var body string
	if len(inv.Args) > 0 && inv.Args[0] == "flat" {
		body = c.buildHelpFlat()
	} else {
		body = c.buildHelpByCategory()
	}
	header := c.Translator.Translate(cc.Event.Locale(), i18n.KeyHelpHeader, c.Prefix)
	return cc.Event.Reply(header + "\n\n" + body)
}

// visible drops owner-only commands from listings.
func (c *HelpCommand) visible() []cmd.Command {
	var out []cmd.Command
	for _, entry := range c.Commands.GetAll() {
		if meta, ok := cmd.Root(entry).(command.DiscordMeta); ok && meta.OwnerOnly() {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (c *HelpCommand) buildHelpByCategory() string {
	categoryMap := make(map[string][]cmd.Command)
	for _, entry := range c.visible() {
		cat := ""
		if meta, ok := cmd.Root(entry).(command.DiscordMeta); ok {
			cat = meta.Category()
		}
		categoryMap[cat] = append(categoryMap[cat], entry)
	}

	cats := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		cats = append(cats, cat)
	}
	slices.SortFunc(cats, func(a, b string) int {
		return cmp.Or(cmp.Compare(config.CategoryWeights[a], config.CategoryWeights[b]), strings.Compare(a, b))
	})

	var sb strings.Builder
	for _, cat := range cats {
		if cat != "" {
			fmt.Fprintf(&sb, "**%s**\n", cat)
		}
		for _, entry := range categoryMap[cat] {
			writeLine(&sb, entry)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

func (c *HelpCommand) buildHelpFlat() string {
	var sb strings.Builder
	for _, entry := range c.visible() {
		writeLine(&sb, entry)
	}
	return strings.TrimSpace(sb.String())
}

func writeLine(sb *strings.Builder, c cmd.Command) {
	fmt.Fprintf(sb, "`%s`", c.Name())
	if a, ok := cmd.Root(c).(cmd.Aliased); ok && len(a.Aliases()) > 0 {
		fmt.Fprintf(sb, " (%s)", strings.Join(a.Aliases(), ", "))
	}
	fmt.Fprintf(sb, " - %s\n", c.Description())
}
