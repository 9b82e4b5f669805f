// Package http serves menus over Discord's outgoing webhook transport:
// interactions arrive as signed POST requests and the response travels in
// the HTTP reply.
package http

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/adapters/discord"
	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server answers interactions for a Dispatcher.
type Server struct {
	Menus   discord.Dispatcher
	Streams *StreamManager

	publicKey ed25519.PublicKey
	session   discord.Session
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	timeout   time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithPublicKey enables Ed25519 verification of incoming requests. Without
// it every request is accepted, which is only suitable for tests.
func WithPublicKey(key ed25519.PublicKey) Option {
	return func(s *Server) {
		s.publicKey = key
	}
}

// WithSession gives menus a REST session to post channel messages with.
func WithSession(session discord.Session) Option {
	return func(s *Server) {
		s.session = session
	}
}

// WithGatherer exposes g on GET /metrics. The default is
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStreams serves GET /events from sm, typically the manager also fed
// by EventHooks.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithTimeout bounds every interaction cycle. Discord expects an answer
// within three seconds.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewServer creates a Server.
func NewServer(menus discord.Dispatcher, opts ...Option) *Server {
	s := &Server{
		Menus:    menus,
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
		timeout:  3 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/interactions", s.Interactions)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Interactions handles the POST /interactions request.
func (s *Server) Interactions(w http.ResponseWriter, r *http.Request) {
	if s.publicKey != nil && !discordgo.VerifyInteraction(r, s.publicKey) {
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		s.logger.Warn("Interactions: signature rejected", "remote", r.RemoteAddr)
		return
	}

	var i discordgo.Interaction
	if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Interactions: invalid request body", "error", err)
		return
	}

	if i.Type == discordgo.InteractionPing {
		s.respond(w, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
		return
	}

	in, ok := discord.FromInteraction(&i)
	if !ok {
		http.Error(w, fmt.Sprintf("unsupported interaction type %d", i.Type), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rec := discord.NewRecorder(s.session)
	err := s.Menus.Handle(ctx, in, rec)
	resp := rec.Response()
	switch {
	case resp != nil:
	case err != nil:
		resp = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Something went wrong.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		}
	default:
		// Dropped or stopped without output: acknowledge silently.
		resp = &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	}
	s.respond(w, resp)
}

func (s *Server) respond(w http.ResponseWriter, resp *discordgo.InteractionResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Interactions: response encode failed", "error", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"app":     "espalier-http",
		"version": strings.TrimSpace(espalier.Version),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// SubscribeEvents handles the GET /events request (SSE). The optional menu
// query parameter narrows the stream to one menu.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	topic := r.URL.Query().Get("menu")
	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "menu", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
