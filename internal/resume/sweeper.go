package resume

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/retrylimit"
)

// Sweeper snapshots every active session before a planned restart.
type Sweeper struct {
	reg     *voice.Registry
	store   Store
	msg     voice.Messenger
	tr      voice.Translator
	limiter *retrylimit.AdaptiveLimiter
	log     zerolog.Logger
}

// SweepReport summarizes a reboot sweep.
type SweepReport struct {
	Stored    []string
	Failed    []string
	Announced int
	Errors    []error
}

// NewSweeper creates a sweeper. limiter paces the announcements and may be
// nil.
func NewSweeper(reg *voice.Registry, store Store, msg voice.Messenger, tr voice.Translator, limiter *retrylimit.AdaptiveLimiter, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		reg:     reg,
		store:   store,
		msg:     msg,
		tr:      tr,
		limiter: limiter,
		log:     logger.With().Str("component", "reboot").Logger(),
	}
}

// Reboot clears old snapshots, stores one per active guild and then tells
// every active guild that the bot is restarting. A guild whose snapshot
// cannot be stored is first told that its queue is lost; the sweep carries
// on with the others. Progress and the final summary go to actor.
func (s *Sweeper) Reboot(ctx context.Context, actor voice.ControlEvent) (SweepReport, error) {
	var report SweepReport
	locale := actor.Locale()

	if err := s.store.RemoveAll(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear old snapshots")
		report.Errors = append(report.Errors, err)
		s.reply(actor, s.tr.Translate(locale, i18n.KeyRebootCleanFailed, err))
	}

	var active []voice.ResumeSnapshot
	for _, conn := range s.reg.All() {
		snap, ok := conn.Snapshot()
		if !ok {
			continue
		}
		if err := s.store.Put(snap); err != nil {
			perr := &voice.PersistenceError{GuildID: snap.GuildID, Err: err}
			s.log.Error().Err(perr).Str("guild", snap.GuildID).Msg("failed to store snapshot")
			report.Failed = append(report.Failed, snap.GuildID)
			report.Errors = append(report.Errors, perr)

			s.reply(actor, s.tr.Translate(locale, i18n.KeyRebootStoreFailed, snap.GuildID, err))
			s.send(ctx, snap.TextChannelID, s.tr.Translate(snap.Locale, i18n.KeyRebootError))
		} else {
			report.Stored = append(report.Stored, snap.GuildID)
		}
		active = append(active, snap)
	}

	// every active session hears about the restart, saved or not
	for _, snap := range active {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if s.send(ctx, snap.TextChannelID, s.tr.Translate(snap.Locale, i18n.KeyRebootAnnounce)) {
			report.Announced++
		}
	}

	logEvent := s.log.Info()
	if s.limiter != nil {
		logEvent = logEvent.Float64("announce_rate", s.limiter.CurrentLimit())
	}
	logEvent.
		Int("stored", len(report.Stored)).
		Int("failed", len(report.Failed)).
		Int("announced", report.Announced).
		Msg("reboot sweep finished")
	s.reply(actor, s.tr.Translate(locale, i18n.KeyRebootDone, len(report.Stored), len(report.Failed), report.Announced))
	return report, nil
}

// send posts text to a channel, paced by the limiter. It reports whether the
// message went out.
func (s *Sweeper) send(ctx context.Context, channelID, text string) bool {
	if channelID == "" {
		return false
	}
	cfg := retrylimit.DefaultRetryConfig()
	cfg.MaxAttempts = 2
	cfg.Logger = s.log
	err := retrylimit.WithRetryConfig(ctx, func() error {
		_, err := s.msg.SendMessage(ctx, channelID, text)
		if channelGone(err) {
			return &retrylimit.FatalError{Err: err}
		}
		return err
	}, s.limiter, cfg)
	var fatal *retrylimit.FatalError
	if errors.As(err, &fatal) {
		s.log.Info().Err(fatal.Err).Str("channel", channelID).Msg("text channel is gone, reboot notice skipped")
		return false
	}
	if err != nil {
		s.log.Warn().Err(&voice.TransportError{Op: "send", Err: err}).Str("channel", channelID).Msg("failed to post reboot notice")
		return false
	}
	return true
}

// channelGone reports whether Discord refused the channel itself: it was
// deleted or the bot lost access to it.
func channelGone(err error) bool {
	var he retrylimit.HTTPError
	if !errors.As(err, &he) {
		return false
	}
	return he.StatusCode() == http.StatusForbidden || he.StatusCode() == http.StatusNotFound
}

func (s *Sweeper) reply(actor voice.ControlEvent, text string) {
	if err := actor.Reply(text); err != nil {
		s.log.Warn().Err(fmt.Errorf("reply to reboot requester: %w", err)).Msg("failed to reply")
	}
}
