// cmd/vinny/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/command/core"
	"github.com/keshon/vinny/internal/command/music"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/control"
	"github.com/keshon/vinny/internal/discord"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/lavalink"
	"github.com/keshon/vinny/internal/logging"
	"github.com/keshon/vinny/internal/middleware"
	"github.com/keshon/vinny/internal/playlist"
	"github.com/keshon/vinny/internal/resume"
	"github.com/keshon/vinny/internal/storage"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
	"github.com/keshon/vinny/pkg/retrylimit"
)

const appName = "Vinny"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: cfg.LogConsole,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("bot exited with error")
		closeLog()
		os.Exit(1)
	}
	logger.Info().Msg("bot exited cleanly")
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	logger.Info().Msgf("starting %s bot", appName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr, err := i18n.New()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.StoragePath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	playlists, err := playlist.New(cfg.PlaylistDBPath)
	if err != nil {
		return err
	}
	defer playlists.Close()

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return err
	}
	presence := discord.NewPresence(dg)
	backend := lavalink.New(logger)
	messenger := control.NewMessenger(dg)

	reg := voice.NewRegistry(voice.Config{
		MaxQueueSize:  cfg.MaxQueueSize,
		SearchPrefix:  cfg.SearchProvider,
		CommandPrefix: cfg.CommandPrefix,
		DefaultVolume: &cfg.DefaultVolume,
	}, voice.Deps{
		Backend:    backend,
		Gateway:    control.NewGateway(dg),
		Messenger:  messenger,
		Translator: tr,
		Logger:     logger,
	})

	limit := rate.Limit(cfg.AnnounceRate)
	sweeper := resume.NewSweeper(reg, store.Resume(), messenger, tr,
		retrylimit.NewAdaptiveLimiter(limit, 1, limit*2, 0.5, 0.5), logger)
	coordinator := resume.NewCoordinator(reg, store.Resume(), messenger, tr,
		cfg.ResumeMaxAge, cfg.ResumeConcurrency, logger)

	var shutdown func()
	if cfg.RebootExit {
		shutdown = cancel
	}

	commands := cmd.NewRegistry()
	all := music.Commands(music.Deps{
		Registry:   reg,
		Voice:      presence,
		Playlists:  playlists,
		Translator: tr,
		Logger:     logger.With().Str("component", "music").Logger(),
	})
	all = append(all,
		&core.HelpCommand{Commands: commands, Translator: tr, Prefix: cfg.CommandPrefix},
		&core.MaintenanceCommand{Latency: dg.HeartbeatLatency, History: store, Translator: tr},
		&core.RebootCommand{Sweeper: sweeper, Shutdown: shutdown},
	)
	for _, c := range all {
		err := command.RegisterCommand(commands, c,
			middleware.WithCommandLogger(store, logger),
			middleware.WithErrorReply(tr, logger),
			middleware.WithGuildOnly(tr),
			middleware.WithOwnerOnly(cfg.IsOwner, tr),
			middleware.WithUserPermissionCheck(presence, cfg.IsOwner, tr),
		)
		if err != nil {
			return err
		}
	}

	bot := discord.New(discord.Deps{
		Config:   cfg,
		Session:  dg,
		Presence: presence,
		Registry: reg,
		Commands: commands,
		Backend:  backend,
		Restorer: coordinator,
		Hashes:   store,
		Logger:   logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}
