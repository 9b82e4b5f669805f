package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/espalier/internal/demo"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/adapters/discord"
	httpAdapter "github.com/aretw0/espalier/pkg/adapters/http"
	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/list"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/bwmarrin/discordgo"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the interactions webhook until ctx is cancelled.
func Serve(ctx context.Context, app *App, addr string, out io.Writer) error {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(app.Logger),
		httpAdapter.WithGatherer(app.Registry),
		httpAdapter.WithStreams(app.Streams),
	}

	if app.Config.Discord.PublicKey != "" {
		key, err := app.Config.Discord.Key()
		if err != nil {
			return err
		}
		opts = append(opts, httpAdapter.WithPublicKey(key))
	} else {
		app.Logger.Warn("no discord public key configured, request signatures are not verified")
	}

	if app.Config.Discord.Token != "" {
		session, err := discordgo.New("Bot " + app.Config.Discord.Token)
		if err != nil {
			return fmt.Errorf("error creating discord session: %w", err)
		}
		opts = append(opts, httpAdapter.WithSession(session))
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: httpAdapter.NewServer(app.Engine, opts...).Handler(),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Starting Espalier server on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		if sc, ok := ctx.(*SignalContext); ok && sc.Signal() != nil {
			printSystemMessage(out, "Start shutdown... Signal: %v", sc.Signal())
		}

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "Espalier server stopped gracefully")
		return nil
	}
}

// RunBot connects to the gateway and answers interactions until ctx is
// cancelled. A non-empty channelID gets a fresh catalog message on start.
func RunBot(ctx context.Context, app *App, channelID string, out io.Writer) error {
	if app.Config.Discord.Token == "" {
		return errors.New("a discord token is required (discord.token or ESPALIER_DISCORD_TOKEN)")
	}
	session, err := discordgo.New("Bot " + app.Config.Discord.Token)
	if err != nil {
		return fmt.Errorf("error creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	session.AddHandler(discord.Handler(app.Engine, discord.WithHandlerLogger(app.Logger)))

	if err := session.Open(); err != nil {
		return fmt.Errorf("error opening gateway: %w", err)
	}
	defer session.Close()
	printSystemMessage(out, "Bot connected")

	if channelID != "" {
		if err := app.Menus.Catalog.Send(ctx, discord.NewResponder(session, nil), channelID, nil); err != nil {
			return fmt.Errorf("error posting catalog: %w", err)
		}
		app.Logger.Info("catalog posted", "channel", channelID)
	}

	<-ctx.Done()
	printSystemMessage(out, "Bot disconnected")
	return nil
}

// PreviewOptions select what Preview renders.
type PreviewOptions struct {
	Key   string
	Page  int
	Modal bool
	// Raw prints the markdown without terminal styling.
	Raw bool
}

// Preview renders the catalog, or the feedback modal, to w.
func Preview(ctx context.Context, app *App, w io.Writer, opts PreviewOptions) error {
	var md string
	if opts.Modal {
		s := app.Menus.Feedback.NewState()
		if opts.Key != "" {
			s.SetString(demo.FieldKey, opts.Key)
		}
		modal, err := app.Menus.Feedback.Render(ctx, s)
		if err != nil {
			return err
		}
		md = tui.ModalMarkdown(modal)
	} else {
		s := app.Menus.Catalog.NewState()
		if opts.Key != "" {
			s.SetString(demo.FieldKey, opts.Key)
		}
		if opts.Page > 0 {
			s.SetInt(list.FieldPage, opts.Page)
		}
		msg, err := app.Menus.Catalog.Render(ctx, s)
		if err != nil {
			return err
		}
		md = tui.Markdown(msg)
	}

	if !opts.Raw {
		rendered, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		md = rendered
	}
	_, err := io.WriteString(w, md)
	return err
}

// Inspect describes every registered menu as JSON or a Mermaid graph.
func Inspect(ctx context.Context, app *App, w io.Writer, format string) error {
	menus := app.Engine.Menus().Menus()
	infos := make([]ui.MenuInfo, 0, len(menus))
	for _, m := range menus {
		infos = append(infos, ui.Describe(m))
	}

	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "mermaid":
		overlay, err := catalogOverlay(ctx, app)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, graph.GenerateMermaid(infos, overlay))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// catalogOverlay marks the components a fresh catalog renders disabled.
func catalogOverlay(ctx context.Context, app *App) (*graph.Overlay, error) {
	catalog := app.Menus.Catalog
	msg, err := catalog.Render(ctx, catalog.NewState())
	if err != nil {
		return nil, err
	}
	overlay := &graph.Overlay{Current: catalog.ID()}
	for _, row := range msg.Rows {
		for _, w := range row {
			if !w.Disabled {
				continue
			}
			if _, name, _, ok := codec.ParseID(w.CustomID); ok {
				overlay.Disabled = append(overlay.Disabled, catalog.ID()+"/"+name)
			}
		}
	}
	return overlay, nil
}
