package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/botdocs/internal/db"
)

func newMemoryStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	b := NewMemoryBackend()
	return NewStore(b, "hu-HU", nil), b
}

func TestDefaults(t *testing.T) {
	s, _ := newMemoryStore(t)
	if s.Theme() != ModeSystem {
		t.Errorf("Theme() = %q, want system", s.Theme())
	}
	if s.Locale() != "hu-HU" {
		t.Errorf("Locale() = %q, want hu-HU", s.Locale())
	}
}

func TestSetAndGet(t *testing.T) {
	s, _ := newMemoryStore(t)
	s.SetTheme(ModeLight)
	s.SetLocale("en-US")
	if s.Theme() != ModeLight {
		t.Errorf("Theme() = %q, want light", s.Theme())
	}
	if s.Locale() != "en-US" {
		t.Errorf("Locale() = %q, want en-US", s.Locale())
	}
}

func TestInvalidStoredValuesFallBack(t *testing.T) {
	s, b := newMemoryStore(t)
	ctx := context.Background()
	b.Set(ctx, KeyTheme, "purple")
	b.Set(ctx, KeyLocale, "not a locale!")
	if s.Theme() != ModeSystem {
		t.Errorf("Theme() = %q, want system", s.Theme())
	}
	if s.Locale() != "hu-HU" {
		t.Errorf("Locale() = %q, want default", s.Locale())
	}
}

func TestInvalidWritesIgnored(t *testing.T) {
	s, _ := newMemoryStore(t)
	s.SetTheme(ModeDark)
	s.SetTheme("sepia")
	s.SetLocale("")
	if s.Theme() != ModeDark {
		t.Errorf("Theme() = %q, want dark", s.Theme())
	}
	if s.Locale() != "hu-HU" {
		t.Errorf("Locale() = %q", s.Locale())
	}
}

func TestBackendFailuresAreSwallowed(t *testing.T) {
	s, b := newMemoryStore(t)
	b.Fail(errors.New("disk full"))

	s.SetTheme(ModeLight) // must not panic or block
	s.SetLocale("en")
	if s.Theme() != ModeSystem {
		t.Errorf("Theme() = %q, want system default on read failure", s.Theme())
	}
	if s.Locale() != "hu-HU" {
		t.Errorf("Locale() = %q, want default on read failure", s.Locale())
	}

	b.Fail(nil)
	s.SetTheme(ModeLight)
	if s.Theme() != ModeLight {
		t.Errorf("Theme() after recovery = %q", s.Theme())
	}
}

func TestEffectiveTheme(t *testing.T) {
	s, _ := newMemoryStore(t)

	s.NotifySystemTheme(true)
	if got := s.EffectiveTheme(); got != ThemeDark {
		t.Errorf("system+OS dark = %q, want dark", got)
	}

	s.SetTheme(ModeLight)
	if got := s.EffectiveTheme(); got != ThemeLight {
		t.Errorf("explicit light = %q, want light", got)
	}
	s.NotifySystemTheme(true)
	if got := s.EffectiveTheme(); got != ThemeLight {
		t.Errorf("explicit light ignores OS signal, got %q", got)
	}

	s.SetTheme(ModeSystem)
	s.NotifySystemTheme(false)
	if got := s.EffectiveTheme(); got != ThemeLight {
		t.Errorf("system+OS light = %q, want light", got)
	}
}

func TestSystemThemeSubscription(t *testing.T) {
	s, _ := newMemoryStore(t)

	var calls []bool
	unsubscribe := s.SubscribeSystemTheme(func(dark bool) { calls = append(calls, dark) })

	s.NotifySystemTheme(false)
	if len(calls) != 1 || calls[0] {
		t.Fatalf("calls = %v, want [false]", calls)
	}

	// Inert while an explicit mode is stored.
	s.SetTheme(ModeDark)
	s.NotifySystemTheme(true)
	if len(calls) != 1 {
		t.Fatalf("subscription fired under explicit mode: %v", calls)
	}

	// Reactivates on switching back to system.
	s.SetTheme(ModeSystem)
	s.NotifySystemTheme(false)
	if len(calls) != 2 {
		t.Fatalf("subscription did not reactivate: %v", calls)
	}

	unsubscribe()
	unsubscribe()
	s.NotifySystemTheme(true)
	if len(calls) != 2 {
		t.Fatalf("subscription fired after unsubscribe: %v", calls)
	}
}

func TestSQLiteBackend(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	b := NewSQLiteBackend(database)
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, KeyTheme); err != nil || ok {
		t.Fatalf("Get on empty = ok %v err %v", ok, err)
	}
	if err := b.Set(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := b.Get(ctx, KeyTheme)
	if err != nil || !ok || v != "light" {
		t.Fatalf("Get = %q %v %v, want light", v, ok, err)
	}

	s := NewStore(b, "en", nil)
	s.SetLocale("de-DE")
	if s.Locale() != "de-DE" {
		t.Errorf("Locale() = %q", s.Locale())
	}
	if s.Theme() != ModeLight {
		t.Errorf("Theme() = %q", s.Theme())
	}
}

func TestParseThemeMode(t *testing.T) {
	for in, want := range map[string]ThemeMode{"system": ModeSystem, " Dark ": ModeDark, "LIGHT": ModeLight} {
		got, ok := ParseThemeMode(in)
		if !ok || got != want {
			t.Errorf("ParseThemeMode(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseThemeMode("auto"); ok {
		t.Error("auto should be invalid")
	}
}
