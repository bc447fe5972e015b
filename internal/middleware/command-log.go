package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/storage"
	"github.com/keshon/vinny/pkg/cmd"
)

// HistoryRecorder stores executed commands.
type HistoryRecorder interface {
	AppendCommandToHistory(guildID string, rec storage.CommandHistory) error
}

// WithCommandLogger logs every command run and records it in the guild's
// command history.
func WithCommandLogger(history HistoryRecorder, logger zerolog.Logger) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			cc, cerr := command.FromInvocation(inv)
			if cerr != nil {
				return err
			}
			user := cc.Event.RequestingUser()
			logger.Info().
				Str("command", c.Name()).
				Str("guild", cc.GuildID).
				Str("user", user.ID).
				Str("source", cc.Event.Source().String()).
				Dur("took", time.Since(start)).
				Msg("command executed")

			if cc.GuildID == "" {
				return err
			}
			rec := storage.CommandHistory{
				ChannelID: cc.Event.TextChannel(),
				UserID:    user.ID,
				Username:  user.Name,
				Command:   c.Name(),
				Source:    cc.Event.Source().String(),
				Datetime:  start,
			}
			if herr := history.AppendCommandToHistory(cc.GuildID, rec); herr != nil {
				logger.Warn().Err(herr).Str("command", c.Name()).Msg("failed to record command")
			}
			return err
		})
	}
}
