// Package config loads the invitado configuration from
// ~/.config/invitado/config.toml, with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the application needs at start-up.
type Config struct {
	APIBaseURL   string // backend base URL, host or full URL
	InvitationID string // invitation shown by the public view
	SessionPath  string // session token file; empty uses the default
	MusicPlayer  string // external audio binary
	MusicTrack   string // background music file or URL
}

type fileFormat struct {
	APIBaseURL   string `toml:"api_base_url"`
	InvitationID string `toml:"invitation_id"`
	SessionPath  string `toml:"session_path"`
	MusicPlayer  string `toml:"music_player"`
	MusicTrack   string `toml:"music_track"`
}

type envOverrides struct {
	APIBaseURL   string `env:"INVITADO_API_BASE_URL"`
	InvitationID string `env:"INVITADO_INVITATION_ID"`
	SessionPath  string `env:"INVITADO_SESSION_PATH"`
}

const (
	defaultConfigPath   = "~/.config/invitado/config.toml"
	defaultInvitationID = "boda-elegante"
	defaultMusicPlayer  = "mpv"
)

// Load locates and parses the config file, falling back to defaults
// when it is missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InvitationID: defaultInvitationID,
		MusicPlayer:  defaultMusicPlayer,
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file: defaults plus env overrides.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var raw fileFormat
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		applyFile(&cfg, raw)
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	applyEnv(&cfg, overrides)

	return cfg, nil
}

func applyFile(cfg *Config, raw fileFormat) {
	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.InvitationID); v != "" {
		cfg.InvitationID = v
	}
	if v := strings.TrimSpace(raw.SessionPath); v != "" {
		cfg.SessionPath = v
	}
	if v := strings.TrimSpace(raw.MusicPlayer); v != "" {
		cfg.MusicPlayer = v
	}
	if v := strings.TrimSpace(raw.MusicTrack); v != "" {
		cfg.MusicTrack = v
	}
}

func applyEnv(cfg *Config, overrides envOverrides) {
	if v := strings.TrimSpace(overrides.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(overrides.InvitationID); v != "" {
		cfg.InvitationID = v
	}
	if v := strings.TrimSpace(overrides.SessionPath); v != "" {
		cfg.SessionPath = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
