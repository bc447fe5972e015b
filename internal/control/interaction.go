package control

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/vinny/internal/voice"
)

// what currently occupies the interaction's original response
const (
	originalNone = iota
	originalDeferred
	originalReply
	originalStatus
)

// interaction is the shared part of Slash and Menu.
type interaction struct {
	lifecycle
	ctx    context.Context
	s      Session
	i      *discordgo.Interaction
	source voice.Source

	respMu   sync.Mutex
	original int
	statusID string // followup carrying the status when the original is a reply
}

func newInteraction(ctx context.Context, s Session, i *discordgo.Interaction, source voice.Source, ttl time.Duration) interaction {
	return interaction{
		lifecycle: newLifecycle(ttl),
		ctx:       ctx,
		s:         s,
		i:         i,
		source:    source,
	}
}

// Defer acknowledges the interaction so Discord shows a "thinking" state
// while the command runs.
func (e *interaction) Defer() error {
	e.respMu.Lock()
	defer e.respMu.Unlock()
	if e.original != originalNone {
		return nil
	}
	err := e.s.InteractionRespond(e.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(e.ctx))
	if err != nil {
		return wrapREST(err)
	}
	e.original = originalDeferred
	return nil
}

func (e *interaction) Reply(text string) error {
	e.respMu.Lock()
	defer e.respMu.Unlock()

	switch e.original {
	case originalNone:
		if err := e.respond(text); err != nil {
			return err
		}
		e.original = originalReply
		return nil
	case originalDeferred:
		if err := e.editOriginal(text); err != nil {
			return err
		}
		e.original = originalReply
		return nil
	}
	_, err := e.s.FollowupMessageCreate(e.i, true, &discordgo.WebhookParams{Content: text}, discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

// ReplyMenu replies with a single string-select menu under text.
func (e *interaction) ReplyMenu(text string, menu discordgo.SelectMenu) error {
	components := []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}}}

	e.respMu.Lock()
	defer e.respMu.Unlock()

	switch e.original {
	case originalNone:
		err := e.s.InteractionRespond(e.i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: text, Components: components},
		}, discordgo.WithContext(e.ctx))
		if err != nil {
			return wrapREST(err)
		}
		e.original = originalReply
		return nil
	case originalDeferred:
		_, err := e.s.InteractionResponseEdit(e.i, &discordgo.WebhookEdit{Content: &text, Components: &components}, discordgo.WithContext(e.ctx))
		if err != nil {
			return wrapREST(err)
		}
		e.original = originalReply
		return nil
	}
	_, err := e.s.FollowupMessageCreate(e.i, true, &discordgo.WebhookParams{Content: text, Components: components}, discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

func (e *interaction) UpdateStatus(text string) error {
	e.respMu.Lock()
	defer e.respMu.Unlock()

	switch e.original {
	case originalNone:
		if err := e.respond(text); err != nil {
			return err
		}
		e.original = originalStatus
		return nil
	case originalDeferred, originalStatus:
		if err := e.editOriginal(text); err != nil {
			return err
		}
		e.original = originalStatus
		return nil
	}

	// the original response is a reply, so the status lives in a followup
	if e.statusID == "" {
		msg, err := e.s.FollowupMessageCreate(e.i, true, &discordgo.WebhookParams{Content: text}, discordgo.WithContext(e.ctx))
		if err != nil {
			return wrapREST(err)
		}
		e.statusID = msg.ID
		return nil
	}
	_, err := e.s.FollowupMessageEdit(e.i, e.statusID, &discordgo.WebhookEdit{Content: &text}, discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

func (e *interaction) respond(text string) error {
	err := e.s.InteractionRespond(e.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: text},
	}, discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

func (e *interaction) editOriginal(text string) error {
	_, err := e.s.InteractionResponseEdit(e.i, &discordgo.WebhookEdit{Content: &text}, discordgo.WithContext(e.ctx))
	return wrapREST(err)
}

// Locale prefers the user's client locale over the guild's.
func (e *interaction) Locale() string {
	if e.i.Locale != "" {
		return string(e.i.Locale)
	}
	if e.i.GuildLocale != nil {
		return string(*e.i.GuildLocale)
	}
	return ""
}

func (e *interaction) RequestingUser() voice.User {
	return userOf(interactionUser(e.i))
}

func (e *interaction) TextChannel() string  { return e.i.ChannelID }
func (e *interaction) Source() voice.Source { return e.source }

// GuildID returns the guild the interaction came from.
func (e *interaction) GuildID() string { return e.i.GuildID }

// Slash is a ControlEvent for an application command.
type Slash struct {
	interaction
}

func NewSlash(ctx context.Context, s Session, i *discordgo.InteractionCreate, ttl time.Duration) *Slash {
	return &Slash{interaction: newInteraction(ctx, s, i.Interaction, voice.SourceSlash, ttl)}
}

// Options returns the command options by name.
func (e *Slash) Options() map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := e.i.ApplicationCommandData()
	opts := data.Options
	// a single subcommand level is flattened
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		out[opts[0].Name] = opts[0]
		opts = opts[0].Options
	}
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

// Menu is a ControlEvent for a string-select component.
type Menu struct {
	interaction
}

func NewMenu(ctx context.Context, s Session, i *discordgo.InteractionCreate, ttl time.Duration) *Menu {
	return &Menu{interaction: newInteraction(ctx, s, i.Interaction, voice.SourceMenu, ttl)}
}

// CustomID returns the component ID the menu was built with.
func (e *Menu) CustomID() string {
	return e.i.MessageComponentData().CustomID
}

// Values returns the selected options.
func (e *Menu) Values() []string {
	return e.i.MessageComponentData().Values
}

// DeleteOrigin removes the message carrying the menu.
func (e *Menu) DeleteOrigin() error {
	if e.i.Message == nil {
		return nil
	}
	return wrapREST(e.s.ChannelMessageDelete(e.i.ChannelID, e.i.Message.ID, discordgo.WithContext(e.ctx)))
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func userOf(u *discordgo.User) voice.User {
	if u == nil {
		return voice.User{}
	}
	name := u.GlobalName
	if name == "" {
		name = u.Username
	}
	return voice.User{ID: u.ID, Name: name}
}
