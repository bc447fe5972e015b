package command

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/pkg/cmd"
)

// RegisterCommand applies mws and adds c to r.
func RegisterCommand(r *cmd.Registry, c cmd.Command, mws ...cmd.Middleware) error {
	return r.Register(cmd.Apply(c, mws...))
}

// SlashDefinitions returns the application commands of every registered
// command that has one.
func SlashDefinitions(r *cmd.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range r.GetAll() {
		sp, ok := cmd.Root(c).(SlashProvider)
		if !ok {
			continue
		}
		if def := sp.SlashDefinition(); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

// FindComponent returns the command owning customID, or nil.
func FindComponent(r *cmd.Registry, customID string) cmd.Command {
	for _, c := range r.GetAll() {
		ch, ok := cmd.Root(c).(ComponentHandler)
		if ok && ch.ComponentPrefix() != "" && strings.HasPrefix(customID, ch.ComponentPrefix()) {
			return c
		}
	}
	return nil
}

// SlashArgs flattens slash command options into positional arguments. A
// subcommand contributes its name first, then its own options.
func SlashArgs(opts []*discordgo.ApplicationCommandInteractionDataOption) []string {
	var args []string
	for _, o := range opts {
		switch o.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			args = append(args, o.Name)
			args = append(args, SlashArgs(o.Options)...)
		case discordgo.ApplicationCommandOptionString:
			args = append(args, o.StringValue())
		case discordgo.ApplicationCommandOptionInteger:
			args = append(args, strconv.FormatInt(o.IntValue(), 10))
		case discordgo.ApplicationCommandOptionBoolean:
			if o.BoolValue() {
				args = append(args, "on")
			} else {
				args = append(args, "off")
			}
		default:
			if s, ok := o.Value.(string); ok {
				args = append(args, s)
			}
		}
	}
	return args
}

// ParseText splits a prefix command message into the command name and its
// arguments. ok is false when content does not start with prefix.
func ParseText(content, prefix string) (name string, args []string, ok bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}
