package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/bwmarrin/discordgo"
)

// Dispatcher runs interactions. *ui.Manager implements it.
type Dispatcher interface {
	Handle(ctx context.Context, in *domain.Interaction, r ui.Responder) error
}

// HandlerOption configures Handler.
type HandlerOption func(*handler)

// WithHandlerLogger sets the logger used for failed interactions.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTimeout bounds every interaction cycle.
func WithTimeout(d time.Duration) HandlerOption {
	return func(h *handler) {
		h.timeout = d
	}
}

// WithErrorMessage sets the ephemeral reply sent when a cycle fails before
// answering. An empty text disables the reply.
func WithErrorMessage(text string) HandlerOption {
	return func(h *handler) {
		h.errorText = text
	}
}

type handler struct {
	menus     Dispatcher
	logger    *slog.Logger
	timeout   time.Duration
	errorText string
}

// Handler returns a gateway event handler for Session.AddHandler.
func Handler(menus Dispatcher, opts ...HandlerOption) func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	h := newHandler(menus, opts...)
	return func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if s == nil || ic == nil {
			return
		}
		h.serve(s, ic.Interaction)
	}
}

func newHandler(menus Dispatcher, opts ...HandlerOption) *handler {
	h := &handler{
		menus:     menus,
		logger:    logging.NewNop(),
		timeout:   10 * time.Second,
		errorText: "Something went wrong.",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *handler) serve(s Session, i *discordgo.Interaction) {
	in, ok := FromInteraction(i)
	if !ok {
		return
	}

	ctx := context.Background()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	r := NewResponder(s, i)
	err := h.menus.Handle(ctx, in, r)
	if err == nil || h.errorText == "" || r.Acknowledged() {
		return
	}
	if err := r.Reply(ctx, &domain.Message{Body: domain.Body{Content: h.errorText}}, true); err != nil {
		h.logger.Warn("failed to report interaction error", "custom_id", in.CustomID, "error", err)
	}
}
