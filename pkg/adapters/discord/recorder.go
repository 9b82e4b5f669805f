package discord

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

// ErrNoSession is returned by Recorder.Send when no session was given.
var ErrNoSession = errors.New("no session to send messages with")

// Recorder captures the answer to an interaction received over HTTP, where
// the response is the body of the HTTP reply. It answers at most once.
type Recorder struct {
	session Session

	mu   sync.Mutex
	resp *discordgo.InteractionResponse
}

// NewRecorder creates a Recorder. session is only used by Send and may be
// nil.
func NewRecorder(session Session) *Recorder {
	return &Recorder{session: session}
}

// Response returns the captured response, or nil if nothing answered.
func (r *Recorder) Response() *discordgo.InteractionResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resp
}

func (r *Recorder) record(resp *discordgo.InteractionResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resp != nil {
		return ErrAlreadyAcknowledged
	}
	r.resp = resp
	return nil
}

func (r *Recorder) Update(_ context.Context, msg *domain.Message) error {
	return r.record(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: ToResponseData(msg),
	})
}

func (r *Recorder) Reply(_ context.Context, msg *domain.Message, ephemeral bool) error {
	data := ToResponseData(msg)
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return r.record(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (r *Recorder) OpenModal(_ context.Context, modal *domain.Modal) error {
	return r.record(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: ToModal(modal),
	})
}

func (r *Recorder) Send(ctx context.Context, channelID string, msg *domain.Message) error {
	if r.session == nil {
		return ErrNoSession
	}
	_, err := r.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    msg.Content,
		Embeds:     ToEmbeds(msg.Embeds),
		Components: ToComponents(msg.Rows),
	}, discordgo.WithContext(ctx))
	return err
}
