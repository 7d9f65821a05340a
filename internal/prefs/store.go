// Package prefs persists the viewer's theme mode and locale. Persistence is
// best-effort: read failures fall back to defaults and write failures are
// logged, never returned.
package prefs

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/botdocs/internal/observability"
)

// Durable storage keys. These are stable across releases.
const (
	KeyTheme  = "botdocs.theme"
	KeyLocale = "botdocs.locale"
)

// backendTimeout bounds a single backend read or write.
const backendTimeout = 2 * time.Second

// ThemeMode is the stored user choice.
type ThemeMode string

const (
	ModeSystem ThemeMode = "system"
	ModeDark   ThemeMode = "dark"
	ModeLight  ThemeMode = "light"
)

// ParseThemeMode validates s.
func ParseThemeMode(s string) (ThemeMode, bool) {
	switch m := ThemeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSystem, ModeDark, ModeLight:
		return m, true
	}
	return "", false
}

// Theme is the theme actually rendered.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Backend is durable key/value storage.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store reads and writes preferences through a Backend.
type Store struct {
	backend       Backend
	defaultLocale string
	logger        *zap.Logger

	mu         sync.Mutex
	systemDark bool
	subs       map[int]func(dark bool)
	nextSub    int
}

// NewStore returns a Store. defaultLocale is used when no valid locale is
// stored. The OS theme signal is assumed dark until NotifySystemTheme says
// otherwise.
func NewStore(backend Backend, defaultLocale string, logger *zap.Logger) *Store {
	return &Store{
		backend:       backend,
		defaultLocale: defaultLocale,
		logger:        observability.OrNop(logger),
		systemDark:    true,
		subs:          make(map[int]func(bool)),
	}
}

// Theme returns the stored theme mode, or ModeSystem.
func (s *Store) Theme() ThemeMode {
	v, ok := s.read(KeyTheme)
	if !ok {
		return ModeSystem
	}
	mode, valid := ParseThemeMode(v)
	if !valid {
		return ModeSystem
	}
	return mode
}

// SetTheme stores mode. Invalid modes are ignored.
func (s *Store) SetTheme(mode ThemeMode) {
	if _, ok := ParseThemeMode(string(mode)); !ok {
		s.logger.Warn("ignoring invalid theme mode", zap.String("mode", string(mode)))
		return
	}
	s.write(KeyTheme, string(mode))
}

// Locale returns the stored locale, or the default locale.
func (s *Store) Locale() string {
	v, ok := s.read(KeyLocale)
	if !ok || !validLocale(v) {
		return s.defaultLocale
	}
	return v
}

// SetLocale stores code. Codes that are not valid BCP 47 tags are ignored.
func (s *Store) SetLocale(code string) {
	code = strings.TrimSpace(code)
	if !validLocale(code) {
		s.logger.Warn("ignoring invalid locale", zap.String("locale", code))
		return
	}
	s.write(KeyLocale, code)
}

// DefaultLocale returns the locale used when none is stored.
func (s *Store) DefaultLocale() string { return s.defaultLocale }

// EffectiveTheme resolves ModeSystem against the last OS signal.
func (s *Store) EffectiveTheme() Theme {
	switch s.Theme() {
	case ModeDark:
		return ThemeDark
	case ModeLight:
		return ThemeLight
	}
	return s.SystemTheme()
}

// SystemTheme returns the theme the last OS signal asked for.
func (s *Store) SystemTheme() Theme {
	s.mu.Lock()
	dark := s.systemDark
	s.mu.Unlock()
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// SubscribeSystemTheme registers fn to be called when the OS theme signal
// changes while the stored mode is ModeSystem. Calls are suppressed while an
// explicit mode is stored and resume once the mode returns to ModeSystem.
// The returned function removes the subscription.
func (s *Store) SubscribeSystemTheme(fn func(dark bool)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// NotifySystemTheme records the OS light/dark signal. Subscribers are
// called synchronously, outside the store's lock, only if the stored mode is
// ModeSystem.
func (s *Store) NotifySystemTheme(dark bool) {
	s.mu.Lock()
	s.systemDark = dark
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if s.Theme() != ModeSystem {
		return
	}
	for _, fn := range fns {
		fn(dark)
	}
}

func (s *Store) read(key string) (string, bool) {
	if s.backend == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("reading preference", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

func (s *Store) write(key, value string) {
	if s.backend == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.logger.Warn("persisting preference", zap.String("key", key), zap.Error(err))
	}
}

func validLocale(code string) bool {
	if code == "" {
		return false
	}
	_, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	return err == nil
}
