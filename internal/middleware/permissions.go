package middleware

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

var PermissionNames = map[int64]string{
	discordgo.PermissionAdministrator:      "Administrator",
	discordgo.PermissionManageGuild:        "Manage Server",
	discordgo.PermissionManageChannels:     "Manage Channels",
	discordgo.PermissionManageMessages:     "Manage Messages",
	discordgo.PermissionVoiceConnect:       "Connect to Voice Channel",
	discordgo.PermissionVoiceMuteMembers:   "Mute Members",
	discordgo.PermissionVoiceMoveMembers:   "Move Members",
	discordgo.PermissionVoiceDeafenMembers: "Deafen Members",
}

// PermissionResolver returns a member's effective permissions in a channel.
type PermissionResolver interface {
	UserChannelPermissions(userID, channelID string) (int64, error)
}

// IsOwner reports whether a user is a bot owner.
type IsOwner func(userID string) bool

// WithOwnerOnly refuses commands whose DiscordMeta asks for an owner to
// anyone else.
func WithOwnerOnly(isOwner IsOwner, tr voice.Translator) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			meta, ok := cmd.Root(c).(command.DiscordMeta)
			if !ok || !meta.OwnerOnly() {
				return c.Run(ctx, inv)
			}
			cc, err := command.FromInvocation(inv)
			if err != nil {
				return err
			}
			if !isOwner(cc.Event.RequestingUser().ID) {
				return command.Say(cc.Event, tr, i18n.KeyOwnerOnly)
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithUserPermissionCheck requires at least one of the command's
// UserPermissions. Administrators and owners always pass.
func WithUserPermissionCheck(perms PermissionResolver, isOwner IsOwner, tr voice.Translator) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			meta, ok := cmd.Root(c).(command.DiscordMeta)
			if !ok || len(meta.UserPermissions()) == 0 {
				return c.Run(ctx, inv)
			}
			cc, err := command.FromInvocation(inv)
			if err != nil {
				return err
			}
			user := cc.Event.RequestingUser()
			if cc.GuildID == "" || isOwner(user.ID) {
				return c.Run(ctx, inv)
			}

			memberPerms, err := perms.UserChannelPermissions(user.ID, cc.Event.TextChannel())
			if err != nil {
				return fmt.Errorf("failed to get user permissions: %w", err)
			}
			if memberPerms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}

			required := meta.UserPermissions()
			for _, p := range required {
				if memberPerms&p != 0 {
					return c.Run(ctx, inv)
				}
			}

			names := make([]string, 0, len(required))
			for _, p := range required {
				name := PermissionNames[p]
				if name == "" {
					name = fmt.Sprintf("0x%x", p)
				}
				names = append(names, name)
			}
			return command.Say(cc.Event, tr, i18n.KeyMissingPermission, strings.Join(names, " / "))
		})
	}
}
