// Package control adapts Discord events to voice.ControlEvent: slash
// commands, prefix text commands and string-select menus all report back
// through the same small surface.
package control

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// DefaultStatusTTL is how long an interaction token stays usable.
const DefaultStatusTTL = 15 * time.Minute

// Session is the part of *discordgo.Session the adapters use.
type Session interface {
	InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(i *discordgo.Interaction, e *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(i *discordgo.Interaction, wait bool, p *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageEdit(i *discordgo.Interaction, messageID string, e *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID, content string, ref *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelVoiceJoinManual(guildID, channelID string, mute, deaf bool) error
}

var _ Session = (*discordgo.Session)(nil)

// lifecycle tracks whether an event may still talk to Discord.
type lifecycle struct {
	mu      sync.Mutex
	created time.Time
	ttl     time.Duration
	closed  bool
	now     func() time.Time
}

func newLifecycle(ttl time.Duration) lifecycle {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return lifecycle{created: time.Now(), ttl: ttl, now: time.Now}
}

// Close ends the reply lifecycle. Later status updates are dropped by the
// voice layer.
func (l *lifecycle) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *lifecycle) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed || l.now().Sub(l.created) >= l.ttl
}

// StatusError is a Discord REST failure with its HTTP status.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string   { return fmt.Sprintf("discord: status %d: %v", e.Code, e.Err) }
func (e *StatusError) Unwrap() error   { return e.Err }
func (e *StatusError) StatusCode() int { return e.Code }

// wrapREST exposes the HTTP status of discordgo REST errors.
func wrapREST(err error) error {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return &StatusError{Code: rerr.Response.StatusCode, Err: err}
	}
	return err
}
