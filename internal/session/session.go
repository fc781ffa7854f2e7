// Package session persists the API bearer token and derives the
// display-only login state from it. The token lives in a small TOML
// file under the user config dir; a watcher notices when another
// running instance rewrites it and re-derives state, so concurrent
// instances stay consistent without restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultSessionPath = "~/.config/invitado/session.toml"
	watchInterval      = time.Second
)

// State is what the views need to know about the session.
type State struct {
	IsLoggedIn bool
	Email      string
	Token      string
}

type fileFormat struct {
	Token string `toml:"token"`
}

// Store owns the persisted token and fan-out of change notifications.
type Store struct {
	path string

	mu    sync.RWMutex
	state State
	subs  []chan State
}

// NewStore opens the store at path (empty uses the default location)
// and loads any existing token. An unreadable or malformed file is
// treated as logged out, never as a failure.
func NewStore(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	s := &Store{path: resolved}
	s.state = stateFromToken(s.readToken())
	return s, nil
}

// Path returns the resolved session file location.
func (s *Store) Path() string {
	return s.path
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set persists the token and notifies subscribers. An empty token is
// equivalent to Clear.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Clear()
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	encoded, err := toml.Marshal(fileFormat{Token: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, encoded, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	s.apply(stateFromToken(token))
	return nil
}

// Clear removes the persisted token and notifies subscribers.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	s.apply(State{})
	return nil
}

// Subscribe returns a channel that receives the new State after every
// change, whether made through this store or noticed by the watcher.
// The channel is buffered; a slow receiver drops intermediate states
// rather than blocking writers.
func (s *Store) Subscribe() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan State, 1)
	s.subs = append(s.subs, ch)
	return ch
}

// Watch polls the session file for out-of-process changes until ctx is
// cancelled. It returns immediately; changes surface via Subscribe.
func (s *Store) Watch(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		last := s.readToken()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			current := s.readToken()
			if current == last {
				continue
			}
			last = current
			s.apply(stateFromToken(current))
		}
	}()
}

func (s *Store) apply(next State) {
	s.mu.Lock()
	if s.state == next {
		s.mu.Unlock()
		return
	}
	s.state = next
	subs := make([]chan State, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- next:
		default:
			// Drop the stale value so the latest state lands.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}

// readToken loads the token from disk, degrading to empty on any
// problem.
func (s *Store) readToken() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return ""
	}
	return strings.TrimSpace(f.Token)
}

func stateFromToken(token string) State {
	if token == "" {
		return State{}
	}
	email, ok := DecodeEmail(token)
	if !ok {
		// Token exists but is undecodable: keep it for API calls, show
		// logged out detail.
		return State{IsLoggedIn: false, Token: token}
	}
	return State{IsLoggedIn: true, Email: email, Token: token}
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultSessionPath
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
