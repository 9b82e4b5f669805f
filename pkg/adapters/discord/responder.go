package discord

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

// ErrAlreadyAcknowledged is returned when a modal is opened for an
// interaction that was already answered or deferred.
var ErrAlreadyAcknowledged = errors.New("interaction already acknowledged")

// Session is the part of *discordgo.Session a Responder needs.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Responder answers one interaction through a session. The first answer is
// an interaction response; later answers, or answers after Defer, edit the
// original response or post followups.
type Responder struct {
	session     Session
	interaction *discordgo.Interaction

	mu    sync.Mutex
	acked bool
}

// NewResponder creates a Responder for interaction.
func NewResponder(session Session, interaction *discordgo.Interaction) *Responder {
	return &Responder{session: session, interaction: interaction}
}

// Acknowledged reports whether the interaction was answered or deferred.
func (r *Responder) Acknowledged() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acked
}

// Defer acknowledges the interaction without changing the message.
func (r *Responder) Defer(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.acked {
		return nil
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	r.acked = true
	return nil
}

func (r *Responder) Update(ctx context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.acked {
		err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: ToResponseData(msg),
		}, discordgo.WithContext(ctx))
		if err != nil {
			return err
		}
		r.acked = true
		return nil
	}

	embeds := ToEmbeds(msg.Embeds)
	components := ToComponents(msg.Rows)
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content:    &msg.Content,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	return err
}

func (r *Responder) Reply(ctx context.Context, msg *domain.Message, ephemeral bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	if !r.acked {
		data := ToResponseData(msg)
		data.Flags = flags
		err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return err
		}
		r.acked = true
		return nil
	}

	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Content:    msg.Content,
		Embeds:     ToEmbeds(msg.Embeds),
		Components: ToComponents(msg.Rows),
		Flags:      flags,
	}, discordgo.WithContext(ctx))
	return err
}

func (r *Responder) OpenModal(ctx context.Context, modal *domain.Modal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acked {
		return ErrAlreadyAcknowledged
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: ToModal(modal),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	r.acked = true
	return nil
}

func (r *Responder) Send(ctx context.Context, channelID string, msg *domain.Message) error {
	_, err := r.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    msg.Content,
		Embeds:     ToEmbeds(msg.Embeds),
		Components: ToComponents(msg.Rows),
	}, discordgo.WithContext(ctx))
	return err
}
