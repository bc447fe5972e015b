package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// commandAPI is the part of *discordgo.Session used to manage guild
// application commands.
type commandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// hashStore remembers what was registered per guild.
type hashStore interface {
	SlashHashes(guildID string) (map[string]string, error)
	SetSlashHashes(guildID string, hashes map[string]string) error
}

// commandSync registers slash commands per guild, touching only the
// commands whose definition changed since the last registration.
type commandSync struct {
	api     commandAPI
	hashes  hashStore
	limiter *rate.Limiter
	log     zerolog.Logger
}

func newCommandSync(api commandAPI, hashes hashStore, logger zerolog.Logger) *commandSync {
	return &commandSync{
		api:     api,
		hashes:  hashes,
		limiter: rate.NewLimiter(rate.Limit(40), 1),
		log:     logger,
	}
}

func (s *commandSync) sync(ctx context.Context, appID, guildID string, defs []*discordgo.ApplicationCommand) error {
	existing, err := s.api.ApplicationCommands(appID, guildID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to list commands: %w", err)
	}
	local, err := s.hashes.SlashHashes(guildID)
	if err != nil {
		s.log.Warn().Err(err).Str("guild", guildID).Msg("failed to read command hashes, registering everything")
		local = make(map[string]string)
	}

	wanted := make(map[string]string, len(defs))
	for _, def := range defs {
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		wanted[def.Name] = hashCommand(def)
	}

	var errs []error
	remote := make(map[string]bool, len(existing))
	for _, old := range existing {
		if _, ok := wanted[old.Name]; ok {
			remote[old.Name] = true
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		s.log.Info().Str("guild", guildID).Str("command", old.Name).Msg("deleting obsolete command")
		if err := s.api.ApplicationCommandDelete(appID, guildID, old.ID, discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", old.Name, err))
			continue
		}
		delete(local, old.Name)
	}

	var changed int
	for _, def := range defs {
		hash := wanted[def.Name]
		if remote[def.Name] && local[def.Name] == hash {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := s.api.ApplicationCommandCreate(appID, guildID, def, discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", def.Name, err))
			delete(local, def.Name)
			continue
		}
		local[def.Name] = hash
		changed++
	}
	if changed > 0 {
		s.log.Info().Str("guild", guildID).Int("changed", changed).Msg("slash commands updated")
	}

	if err := s.hashes.SetSlashHashes(guildID, local); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
