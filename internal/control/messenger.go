package control

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/voice"
)

// Messenger sends system messages to text channels.
type Messenger struct {
	s Session
}

func NewMessenger(s Session) *Messenger {
	return &Messenger{s: s}
}

func (m *Messenger) SendMessage(ctx context.Context, channelID, text string) (voice.MessageHandle, error) {
	msg, err := m.s.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return voice.MessageHandle{}, &voice.TransportError{Op: "send", Err: wrapREST(err)}
	}
	return voice.MessageHandle{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (m *Messenger) EditMessage(ctx context.Context, h voice.MessageHandle, text string) error {
	if _, err := m.s.ChannelMessageEdit(h.ChannelID, h.MessageID, text, discordgo.WithContext(ctx)); err != nil {
		return &voice.TransportError{Op: "edit", Err: wrapREST(err)}
	}
	return nil
}

func (m *Messenger) DeleteMessage(ctx context.Context, h voice.MessageHandle) error {
	if err := m.s.ChannelMessageDelete(h.ChannelID, h.MessageID, discordgo.WithContext(ctx)); err != nil {
		return &voice.TransportError{Op: "delete", Err: wrapREST(err)}
	}
	return nil
}

// Gateway joins and leaves voice channels without opening a voice
// connection of its own; the audio node streams to Discord directly.
type Gateway struct {
	s Session
}

func NewGateway(s Session) *Gateway {
	return &Gateway{s: s}
}

func (g *Gateway) JoinVoice(_ context.Context, guildID, channelID string) error {
	return g.s.ChannelVoiceJoinManual(guildID, channelID, false, true)
}

func (g *Gateway) LeaveVoice(_ context.Context, guildID string) error {
	return g.s.ChannelVoiceJoinManual(guildID, "", false, true)
}
