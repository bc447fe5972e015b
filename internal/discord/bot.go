// Package discord connects the gateway session to the voice registry, the
// audio backend and the command registry.
package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/control"
	"github.com/keshon/vinny/internal/lavalink"
	"github.com/keshon/vinny/internal/resume"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

// Restorer brings back the sessions stored before the last restart.
type Restorer interface {
	RestoreAll(ctx context.Context) (resume.RestoreReport, error)
}

// Deps are the collaborators of a Bot.
type Deps struct {
	Config   *config.Config
	Session  *discordgo.Session
	Presence *Presence
	Registry *voice.Registry
	Commands *cmd.Registry
	Backend  *lavalink.Backend
	Restorer Restorer
	Hashes   hashStore
	Logger   zerolog.Logger
}

// Bot is a Discord bot
type Bot struct {
	cfg      *config.Config
	dg       *discordgo.Session
	presence *Presence
	reg      *voice.Registry
	commands *cmd.Registry
	backend  *lavalink.Backend
	restorer Restorer
	slash    *commandSync
	log      zerolog.Logger

	ctx         context.Context
	restoreOnce sync.Once
}

func New(d Deps) *Bot {
	logger := d.Logger.With().Str("component", "discord").Logger()
	presence := d.Presence
	if presence == nil {
		presence = NewPresence(d.Session)
	}
	return &Bot{
		cfg:      d.Config,
		dg:       d.Session,
		presence: presence,
		reg:      d.Registry,
		commands: d.Commands,
		backend:  d.Backend,
		restorer: d.Restorer,
		slash:    newCommandSync(d.Session, d.Hashes, logger),
		log:      logger,
		ctx:      context.Background(),
	}
}

// Run opens the gateway session and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	b.backend.OnTrackEnd(b.onTrackEnd)

	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onGuildDelete)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onVoiceStateUpdate)
	b.dg.AddHandler(b.onVoiceServerUpdate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.backend.Close()
	defer b.dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, cleaning up")
	return nil
}

// onReady starts the audio backend and restores stored sessions once.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if b.cfg.IsGuildBlacklisted(g.ID) {
			b.leaveGuild(s, g.ID)
		}
	}

	nodes, err := b.cfg.Nodes()
	if err != nil {
		b.log.Error().Err(err).Msg("invalid lavalink node list")
		return
	}
	if err := b.backend.Start(b.ctx, r.User.ID, nodes); err != nil {
		b.log.Error().Err(err).Msg("failed to start lavalink, stored sessions are kept for the next start")
		return
	}

	b.restoreOnce.Do(func() {
		go b.restore()
	})
	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("discord bot is running")
}

func (b *Bot) restore() {
	report, err := b.restorer.RestoreAll(b.ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to restore sessions")
		return
	}
	b.log.Info().
		Int("restored", len(report.Restored)).
		Int("expired", len(report.Expired)).
		Int("failed", len(report.Failed)).
		Msg("session restore finished")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.cfg.IsGuildBlacklisted(g.ID) {
		b.leaveGuild(s, g.ID)
		return
	}
	if err := b.registerCommands(g.ID); err != nil {
		b.log.Error().Err(err).Str("guild", g.ID).Msg("failed to register slash commands")
	}
}

// onGuildDelete drops the session of a guild the bot was removed from. An
// unavailable guild is an outage and keeps its session.
func (b *Bot) onGuildDelete(_ *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	conn, ok := b.reg.Lookup(g.ID)
	if !ok {
		return
	}
	if err := conn.Disconnect(b.ctx); err != nil {
		b.log.Warn().Err(err).Str("guild", g.ID).Msg("failed to disconnect removed guild")
	}
	b.reg.Forget(g.ID)
}

func (b *Bot) leaveGuild(s *discordgo.Session, guildID string) {
	b.log.Info().Str("guild", guildID).Msg("leaving blacklisted guild")
	if err := s.GuildLeave(guildID); err != nil {
		b.log.Error().Err(err).Str("guild", guildID).Msg("failed to leave guild")
	}
}

func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		return errors.New("bot user is not known yet")
	}
	return b.slash.sync(b.ctx, appID, guildID, command.SlashDefinitions(b.commands))
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	name, args, ok := command.ParseText(m.Content, b.cfg.CommandPrefix)
	if !ok {
		return
	}
	c := b.commands.Get(name)
	if c == nil {
		return
	}

	ev := control.NewText(b.ctx, s, m, b.presence.GuildLocale(m.GuildID), b.cfg.StatusTTL)
	b.dispatch(c, &cmd.Invocation{
		Name: name,
		Args: args,
		Data: &command.Context{Event: ev, GuildID: m.GuildID},
	})
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		c := b.commands.Get(data.Name)
		if c == nil {
			b.log.Warn().Str("command", data.Name).Msg("unknown command")
			return
		}
		ev := control.NewSlash(b.ctx, s, i, b.cfg.StatusTTL)
		b.dispatch(c, &cmd.Invocation{
			Name: data.Name,
			Args: command.SlashArgs(data.Options),
			Data: &command.Context{Event: ev, GuildID: i.GuildID},
		})

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		c := command.FindComponent(b.commands, data.CustomID)
		if c == nil {
			b.log.Warn().Str("custom_id", data.CustomID).Msg("no command owns component")
			return
		}
		ev := control.NewMenu(b.ctx, s, i, b.cfg.StatusTTL)
		b.dispatch(c, &cmd.Invocation{
			Name: c.Name(),
			Args: data.Values,
			Data: &command.Context{Event: ev, GuildID: i.GuildID, CustomID: data.CustomID},
		})

	default:
		b.log.Debug().Int("type", int(i.Type)).Msg("unhandled interaction type")
	}
}

// closer is implemented by control events whose reply lifecycle can be ended
// early.
type closer interface{ Close() }

// dispatch runs c. A failed action ends its event right away so queue entries
// it may have left behind never edit its status message again; successful
// events live until their TTL runs out.
func (b *Bot) dispatch(c cmd.Command, inv *cmd.Invocation) {
	err := c.Run(b.ctx, inv)
	if err == nil {
		return
	}
	b.log.Error().Err(err).Str("command", c.Name()).Msg("command failed")
	if cc, ok := inv.Data.(*command.Context); ok && cc != nil {
		if ev, ok := cc.Event.(closer); ok {
			ev.Close()
		}
	}
}

// onVoiceStateUpdate forwards the bot's own voice state to Lavalink. Losing
// the channel without a leave request suspends the session.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if s.State.User == nil || v.UserID != s.State.User.ID {
		return
	}
	b.backend.VoiceStateUpdate(b.ctx, v.GuildID, v.ChannelID, v.SessionID)

	if v.ChannelID != "" {
		return
	}
	if conn, ok := b.reg.Lookup(v.GuildID); ok && conn.State() == voice.StateConnected {
		conn.Suspend(b.ctx)
	}
}

func (b *Bot) onVoiceServerUpdate(_ *discordgo.Session, v *discordgo.VoiceServerUpdate) {
	b.backend.VoiceServerUpdate(b.ctx, v.GuildID, v.Token, v.Endpoint)
}

func (b *Bot) onTrackEnd(guildID, handle string, mayStartNext bool) {
	conn, ok := b.reg.Lookup(guildID)
	if !ok {
		return
	}
	conn.OnTrackEnd(b.ctx, handle, mayStartNext)
}
