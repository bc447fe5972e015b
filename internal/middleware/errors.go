// Package middleware holds the command middlewares the bot applies to every
// Discord command.
package middleware

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

// WithErrorReply turns command errors into replies. Expected conditions are
// rendered for the user; anything else is logged and answered with a generic
// message. The wrapped command never returns an error to the dispatcher
// unless the reply itself fails.
func WithErrorReply(tr voice.Translator, logger zerolog.Logger) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)
			if err == nil {
				return nil
			}
			cc, cerr := command.FromInvocation(inv)
			if cerr != nil {
				return err
			}

			var visible *voice.UserVisibleError
			switch {
			case errors.As(err, &visible):
				logger.Debug().Err(err).Str("command", c.Name()).Msg("command refused")
				return command.Say(cc.Event, tr, visible.Key, visible.Args...)
			case voice.IsUserFacing(err):
				// already reported through the event's status message
				logger.Debug().Err(err).Str("command", c.Name()).Msg("command failed")
				return nil
			}

			logger.Error().Err(err).Str("command", c.Name()).Str("guild", cc.GuildID).Msg("command failed")
			return command.Say(cc.Event, tr, i18n.KeyGenericError)
		})
	}
}
