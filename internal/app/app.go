// Package app wires configuration, the backend client, the session
// store and audio into the UI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nmartini/invitado/internal/api"
	"github.com/nmartini/invitado/internal/audio"
	"github.com/nmartini/invitado/internal/config"
	"github.com/nmartini/invitado/internal/session"
	"github.com/nmartini/invitado/internal/ui"
)

// Options configure the invitado application.
type Options struct {
	ConfigPath   string // empty uses ~/.config/invitado/config.toml
	InvitationID string // overrides the configured invitation
}

// Default photo set, shown four tiles at a time.
var defaultImages = []string{
	"fotos/pareja-atardecer.webp",
	"fotos/anillos.webp",
	"fotos/brindis.webp",
	"fotos/baile.webp",
	"fotos/viaje.webp",
	"fotos/propuesta.webp",
	"fotos/familia.webp",
	"fotos/playa.webp",
}

// Run boots the invitado TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	log := newLogger()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.InvitationID != "" {
		cfg.InvitationID = opts.InvitationID
	}

	client, err := api.NewClient(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	sessions, err := session.NewStore(cfg.SessionPath)
	if err != nil {
		return fmt.Errorf("init session store: %w", err)
	}
	sessions.Watch(ctx)

	var negotiator *audio.Negotiator
	if cfg.MusicTrack != "" {
		negotiator = audio.NewNegotiator(audio.NewExecPlayer(cfg.MusicPlayer, cfg.MusicTrack))
		defer func() {
			if err := negotiator.Close(); err != nil {
				log.WithError(err).Debug("stop music")
			}
		}()
	}

	log.WithField("invitation", cfg.InvitationID).Info("starting")

	return ui.Run(ui.Options{
		Context:      ctx,
		Client:       client,
		Sessions:     sessions,
		Audio:        negotiator,
		InvitationID: cfg.InvitationID,
		Images:       defaultImages,
		Log:          log,
	})
}

// newLogger logs to ~/.local/state/invitado/invitado.log. The TUI owns
// the terminal, so on any problem opening the file logging is dropped
// rather than written to stderr.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	dir := filepath.Join(home, ".local", "state", "invitado")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	f, err := os.OpenFile(filepath.Join(dir, "invitado.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	return log
}
