package resume

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/voice"
)

const defaultConcurrency = 4

// Coordinator restores stored sessions at startup.
type Coordinator struct {
	reg         *voice.Registry
	store       Store
	msg         voice.Messenger
	tr          voice.Translator
	maxAge      time.Duration
	concurrency int
	now         func() time.Time
	log         zerolog.Logger
}

// RestoreReport summarizes a restore run.
type RestoreReport struct {
	Restored []string
	Expired  []string
	Failed   map[string]error
}

// NewCoordinator creates a coordinator. Snapshots older than maxAge are
// discarded; zero keeps them regardless of age.
func NewCoordinator(reg *voice.Registry, store Store, msg voice.Messenger, tr voice.Translator, maxAge time.Duration, concurrency int, logger zerolog.Logger) *Coordinator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Coordinator{
		reg:         reg,
		store:       store,
		msg:         msg,
		tr:          tr,
		maxAge:      maxAge,
		concurrency: concurrency,
		now:         time.Now,
		log:         logger.With().Str("component", "resume").Logger(),
	}
}

// RestoreAll restores every stored snapshot, a bounded number of guilds at a
// time. A snapshot is removed only once its guild plays again; failures are
// kept per guild and do not stop the others.
func (c *Coordinator) RestoreAll(ctx context.Context) (RestoreReport, error) {
	report := RestoreReport{Failed: make(map[string]error)}

	snaps, err := c.store.All()
	if err != nil {
		return report, err
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(c.concurrency)

	for _, snap := range snaps {
		if c.maxAge > 0 && c.now().Sub(snap.CreatedAt) > c.maxAge {
			c.log.Info().Str("guild", snap.GuildID).Time("created", snap.CreatedAt).Msg("discarding stale snapshot")
			c.remove(snap.GuildID)
			report.Expired = append(report.Expired, snap.GuildID)
			continue
		}

		g.Go(func() error {
			err := c.restore(ctx, snap)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed[snap.GuildID] = err
			} else {
				report.Restored = append(report.Restored, snap.GuildID)
			}
			return nil
		})
	}
	_ = g.Wait()

	c.log.Info().
		Int("restored", len(report.Restored)).
		Int("failed", len(report.Failed)).
		Int("expired", len(report.Expired)).
		Msg("session restore finished")
	return report, ctx.Err()
}

func (c *Coordinator) restore(ctx context.Context, snap voice.ResumeSnapshot) error {
	log := c.log.With().Str("guild", snap.GuildID).Logger()

	conn := c.reg.Get(snap.GuildID)
	if err := conn.Restore(ctx, snap); err != nil {
		log.Error().Err(err).Msg("failed to restore session")
		return err
	}
	c.remove(snap.GuildID)

	cur, _ := conn.NowPlaying()
	log.Info().Str("track", cur.Ref()).Int("queued", len(conn.Queue())).Msg("session restored")

	if snap.TextChannelID != "" {
		text := c.tr.Translate(conn.Locale(), i18n.KeyResumeMessage, cur.Display())
		if _, err := c.msg.SendMessage(ctx, snap.TextChannelID, text); err != nil {
			log.Warn().Err(&voice.TransportError{Op: "send", Err: err}).Msg("failed to announce restored session")
		}
	}
	return nil
}

func (c *Coordinator) remove(guildID string) {
	if err := c.store.Remove(guildID); err != nil {
		c.log.Warn().Err(err).Str("guild", guildID).Msg("failed to remove snapshot")
	}
}
