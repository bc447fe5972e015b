package control

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/voice"
)

// Text is a ControlEvent for a prefix command typed in a text channel.
type Text struct {
	lifecycle
	ctx    context.Context
	s      Session
	m      *discordgo.Message
	locale string

	statusMu sync.Mutex
	statusID string
}

// NewText wraps a message. locale is the guild's preferred locale since
// messages carry none of their own.
func NewText(ctx context.Context, s Session, m *discordgo.MessageCreate, locale string, ttl time.Duration) *Text {
	return &Text{
		lifecycle: newLifecycle(ttl),
		ctx:       ctx,
		s:         s,
		m:         m.Message,
		locale:    locale,
	}
}

func (e *Text) Reply(text string) error {
	_, err := e.s.ChannelMessageSendReply(e.m.ChannelID, text, e.m.Reference(), discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

// ReplyMenu replies with a single string-select menu under text.
func (e *Text) ReplyMenu(text string, menu discordgo.SelectMenu) error {
	_, err := e.s.ChannelMessageSendComplex(e.m.ChannelID, &discordgo.MessageSend{
		Content:    text,
		Reference:  e.m.Reference(),
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}}},
	}, discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

func (e *Text) UpdateStatus(text string) error {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	if e.statusID == "" {
		msg, err := e.s.ChannelMessageSend(e.m.ChannelID, text, discordgo.WithContext(e.ctx))
		if err != nil {
			return wrapREST(err)
		}
		e.statusID = msg.ID
		return nil
	}
	_, err := e.s.ChannelMessageEdit(e.m.ChannelID, e.statusID, text, discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

func (e *Text) Locale() string             { return e.locale }
func (e *Text) RequestingUser() voice.User { return userOf(e.m.Author) }
func (e *Text) TextChannel() string        { return e.m.ChannelID }
func (e *Text) Source() voice.Source       { return voice.SourceText }
func (e *Text) GuildID() string            { return e.m.GuildID }

// Message returns the wrapped message.
func (e *Text) Message() *discordgo.Message { return e.m }
