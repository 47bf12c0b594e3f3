// Package session persists the logged-in principal and UI preferences in a
// JSON file so a console restart resumes where the user left off.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Principal is the identity half of a session: who is logged in and the
// bearer token proving it. The password is never stored.
type Principal struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type state struct {
	User  *Principal `json:"user,omitempty"`
	Theme string     `json:"theme,omitempty"`
}

// Store reads and writes the session file. Every mutation is flushed to disk
// immediately; the file is the source of truth across restarts.
type Store struct {
	path   string
	logger *zap.Logger
	state  state
}

func NewStore(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger, state: state{Theme: ThemeLight}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt session file means logging in again, not a dead console.
		logger.Warn("Session file unreadable, starting fresh", zap.String("path", path), zap.Error(err))
		s.state = state{Theme: ThemeLight}
	}
	if s.state.Theme == "" {
		s.state.Theme = ThemeLight
	}
	return s, nil
}

// Current returns the stored principal, or nil when nobody is logged in.
func (s *Store) Current() *Principal {
	return s.state.User
}

func (s *Store) Login(p Principal) error {
	s.state.User = &p
	return s.flush()
}

// Logout clears the principal but keeps preferences like the theme.
func (s *Store) Logout() error {
	s.state.User = nil
	return s.flush()
}

func (s *Store) Theme() string {
	return s.state.Theme
}

func (s *Store) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	s.state.Theme = theme
	return s.flush()
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
