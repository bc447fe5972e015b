package music

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/playlist"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

const (
	loadPlaylistPrefix = "loadplaylist-"
	// maxMenuOptions is Discord's limit for one select menu.
	maxMenuOptions = 25
)

// originDeleter is implemented by menu events.
type originDeleter interface {
	DeleteOrigin() error
}

type PlaylistCommand struct {
	base
	Deps
}

func (c *PlaylistCommand) Name() string        { return "playlist" }
func (c *PlaylistCommand) Description() string { return "Load, save or delete server playlists" }
func (c *PlaylistCommand) Aliases() []string   { return []string{"pl"} }
func (c *PlaylistCommand) Category() string    { return config.CategoryPlaylists }

// ComponentPrefix routes the playlist select menu back to this command.
func (c *PlaylistCommand) ComponentPrefix() string { return loadPlaylistPrefix }

func (c *PlaylistCommand) SlashDefinition() *discordgo.ApplicationCommand {
	name := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Playlist name",
		Required:    true,
	}
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "load",
				Description: "Pick a saved playlist to queue",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "save",
				Description: "Save the current track and queue as a playlist",
				Options:     []*discordgo.ApplicationCommandOption{name},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Delete a saved playlist",
				Options:     []*discordgo.ApplicationCommandOption{name},
			},
		},
	}
}

func (c *PlaylistCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	if cc.CustomID != "" {
		return c.runMenu(ctx, cc, inv.Args)
	}

	sub, rest := "load", inv.Args
	if len(rest) > 0 {
		sub, rest = strings.ToLower(rest[0]), rest[1:]
	}
	name := strings.TrimSpace(strings.Join(rest, " "))

	switch sub {
	case "load":
		return c.runLoad(ctx, cc)
	case "save":
		return c.runSave(ctx, cc, name)
	case "delete", "remove":
		return c.runDelete(ctx, cc, name)
	}
	return fmt.Errorf("unknown playlist subcommand %q", sub)
}

// runLoad offers the guild's playlists in a select menu.
func (c *PlaylistCommand) runLoad(ctx context.Context, cc *command.Context) error {
	lists, err := c.Playlists.ListPlaylists(ctx, cc.GuildID)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		return c.say(cc.Event, i18n.KeyPlaylistNone)
	}
	mr, ok := cc.Event.(menuReplier)
	if !ok {
		return fmt.Errorf("%s events cannot show menus", cc.Event.Source())
	}
	text := c.Translator.Translate(cc.Event.Locale(), i18n.KeyPlaylistPick)
	return mr.ReplyMenu(text, playlistMenu(cc.GuildID, lists))
}

func playlistMenu(guildID string, lists []playlist.Playlist) discordgo.SelectMenu {
	if len(lists) > maxMenuOptions {
		lists = lists[:maxMenuOptions]
	}
	options := make([]discordgo.SelectMenuOption, len(lists))
	for i, p := range lists {
		options[i] = discordgo.SelectMenuOption{
			Label:       p.Name,
			Value:       strconv.FormatInt(p.ID, 10),
			Description: fmt.Sprintf("%d track(s)", p.TrackCount),
		}
	}
	return discordgo.SelectMenu{
		MenuType: discordgo.StringSelectMenu,
		CustomID: loadPlaylistPrefix + guildID,
		Options:  options,
	}
}

// runMenu queues the playlist picked from the menu. The menu is single use
// and is removed whatever the outcome.
func (c *PlaylistCommand) runMenu(ctx context.Context, cc *command.Context, values []string) error {
	defer func() {
		if d, ok := cc.Event.(originDeleter); ok {
			if err := d.DeleteOrigin(); err != nil {
				c.Logger.Warn().Err(err).Str("guild", cc.GuildID).Msg("failed to remove playlist menu")
			}
		}
	}()

	if err := deferIfInteraction(cc.Event); err != nil {
		return err
	}
	if len(values) == 0 || cc.CustomID != loadPlaylistPrefix+cc.GuildID {
		return voice.NewUserVisible(i18n.KeyPlaylistNotFound)
	}
	id, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return voice.NewUserVisible(i18n.KeyPlaylistNotFound)
	}
	p, err := c.Playlists.GetPlaylistByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || p.GuildID != cc.GuildID {
		return voice.NewUserVisible(i18n.KeyPlaylistNotFound)
	}

	conn, err := c.join(ctx, cc)
	if err != nil {
		return err
	}
	return conn.LoadPlaylist(ctx, p.Name, p.Refs(), cc.Event)
}

func (c *PlaylistCommand) runSave(ctx context.Context, cc *command.Context, name string) error {
	if name == "" {
		return voice.NewUserVisible(i18n.KeyPlaylistName)
	}
	conn, ok := c.Registry.Lookup(cc.GuildID)
	if !ok {
		return voice.NewUserVisible(i18n.KeyPlaylistEmpty)
	}
	var tracks []voice.Track
	if cur, playing := conn.NowPlaying(); playing {
		tracks = append(tracks, cur)
	}
	tracks = append(tracks, conn.Queue()...)
	if len(tracks) == 0 {
		return voice.NewUserVisible(i18n.KeyPlaylistEmpty)
	}

	entries := make([]playlist.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.Ref() == "" {
			continue
		}
		entries = append(entries, playlist.Track{Ref: t.Ref(), Title: t.Title})
	}
	p, err := c.Playlists.SavePlaylist(ctx, cc.GuildID, name, cc.Event.RequestingUser().ID, entries)
	if err != nil {
		return err
	}
	return c.say(cc.Event, i18n.KeyPlaylistSaved, len(entries), p.Name)
}

func (c *PlaylistCommand) runDelete(ctx context.Context, cc *command.Context, name string) error {
	if name == "" {
		return voice.NewUserVisible(i18n.KeyPlaylistName)
	}
	lists, err := c.Playlists.ListPlaylists(ctx, cc.GuildID)
	if err != nil {
		return err
	}
	for _, p := range lists {
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		ok, err := c.Playlists.DeletePlaylist(ctx, cc.GuildID, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		return c.say(cc.Event, i18n.KeyPlaylistDeleted, p.Name)
	}
	return voice.NewUserVisible(i18n.KeyPlaylistNotFound)
}
