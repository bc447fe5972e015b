// Package music holds the playback and playlist commands.
package music

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/i18n"
	"github.com/keshon/vinny/internal/playlist"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

// VoiceLocator finds the voice channel a member is connected to.
type VoiceLocator interface {
	UserVoiceChannel(guildID, userID string) (string, bool)
}

// PlaylistLookup is the saved playlist store.
type PlaylistLookup interface {
	GetPlaylistByID(ctx context.Context, id int64) (*playlist.Playlist, error)
	ListPlaylists(ctx context.Context, guildID string) ([]playlist.Playlist, error)
	SavePlaylist(ctx context.Context, guildID, name, createdBy string, tracks []playlist.Track) (*playlist.Playlist, error)
	DeletePlaylist(ctx context.Context, guildID string, id int64) (bool, error)
}

// Deps are shared by every music command.
type Deps struct {
	Registry   *voice.Registry
	Voice      VoiceLocator
	Playlists  PlaylistLookup
	Translator voice.Translator
	Logger     zerolog.Logger
}

// Commands returns every music command.
func Commands(d Deps) []cmd.Command {
	return []cmd.Command{
		&PlayCommand{Deps: d},
		&PauseCommand{Deps: d},
		&SkipCommand{Deps: d},
		&StopCommand{Deps: d},
		&VolumeCommand{Deps: d},
		&LockVolumeCommand{Deps: d},
		&QueueCommand{Deps: d},
		&PlaylistCommand{Deps: d},
	}
}

// base provides the DiscordMeta shared by music commands.
type base struct{}

func (base) Category() string         { return config.CategoryMusic }
func (base) OwnerOnly() bool          { return false }
func (base) UserPermissions() []int64 { return nil }

// deferrer is implemented by interaction events that may need more than the
// three seconds Discord allows before the first response.
type deferrer interface {
	Defer() error
}

// menuReplier is implemented by events that can carry a select menu.
type menuReplier interface {
	ReplyMenu(text string, menu discordgo.SelectMenu) error
}

func deferIfInteraction(ev voice.ControlEvent) error {
	if d, ok := ev.(deferrer); ok {
		return d.Defer()
	}
	return nil
}

// join connects the guild's session to the requester's voice channel.
func (d Deps) join(ctx context.Context, cc *command.Context) (*voice.Connection, error) {
	conn := d.Registry.Get(cc.GuildID)
	channel, ok := d.Voice.UserVoiceChannel(cc.GuildID, cc.Event.RequestingUser().ID)
	if !ok {
		return nil, voice.NewUserVisible(i18n.KeyNotInVoice)
	}
	conn.Observe(cc.Event)
	if err := conn.Connect(ctx, channel); err != nil {
		return nil, err
	}
	return conn, nil
}

func (d Deps) say(ev voice.ControlEvent, key string, args ...any) error {
	return command.Say(ev, d.Translator, key, args...)
}
