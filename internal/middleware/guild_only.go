package middleware

import (
	"context"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

// WithGuildOnly refuses commands sent outside a guild.
func WithGuildOnly(tr voice.Translator) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			cc, err := command.FromInvocation(inv)
			if err != nil {
				return err
			}
			if cc.GuildID == "" {
				return command.Say(cc.Event, tr, i18n.KeyGuildOnly)
			}
			return c.Run(ctx, inv)
		})
	}
}
