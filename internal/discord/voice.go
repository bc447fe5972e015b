package discord

import "github.com/bwmarrin/discordgo"

// Presence answers questions about members from the gateway state cache.
type Presence struct {
	dg *discordgo.Session
}

func NewPresence(dg *discordgo.Session) *Presence {
	return &Presence{dg: dg}
}

// UserVoiceChannel returns the voice channel a member is connected to.
func (p *Presence) UserVoiceChannel(guildID, userID string) (string, bool) {
	vs, err := p.dg.State.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return "", false
	}
	return vs.ChannelID, true
}

func (p *Presence) UserChannelPermissions(userID, channelID string) (int64, error) {
	return p.dg.UserChannelPermissions(userID, channelID)
}

// GuildLocale returns the preferred locale of a cached guild.
func (p *Presence) GuildLocale(guildID string) string {
	g, err := p.dg.State.Guild(guildID)
	if err != nil || g == nil {
		return ""
	}
	return string(g.PreferredLocale)
}
