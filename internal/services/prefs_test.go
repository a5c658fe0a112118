package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"dailyfuel/internal/core"
	"dailyfuel/internal/kvstore"
)

func TestPreferencesDefaults(t *testing.T) {
	p := NewPreferences(context.Background(), kvstore.NewMemoryStore())

	if !p.DailyLimit().IsZero() {
		t.Errorf("default limit = %s, want 0", p.DailyLimit())
	}
	if p.Currency() != "$" {
		t.Errorf("default currency = %q, want $", p.Currency())
	}
	if p.Theme() != core.ThemeDark {
		t.Errorf("default theme = %q, want dark", p.Theme())
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	p := NewPreferences(ctx, store)
	if err := p.SetDailyLimit(ctx, decimal.RequireFromString("50")); err != nil {
		t.Fatalf("SetDailyLimit: %v", err)
	}
	if err := p.SetCurrency(ctx, "€"); err != nil {
		t.Fatalf("SetCurrency: %v", err)
	}
	if err := p.SetTheme(ctx, core.ThemeLight); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}

	reloaded := NewPreferences(ctx, store)
	if !reloaded.DailyLimit().Equal(decimal.RequireFromString("50")) {
		t.Errorf("reloaded limit = %s, want 50", reloaded.DailyLimit())
	}
	if reloaded.Currency() != "€" {
		t.Errorf("reloaded currency = %q, want €", reloaded.Currency())
	}
	if reloaded.Theme() != core.ThemeLight {
		t.Errorf("reloaded theme = %q, want light", reloaded.Theme())
	}
}

func TestPreferencesAcceptLooseValues(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(ctx, kvstore.NewMemoryStore())

	// Negative limits and arbitrary currency strings are accepted as-is
	if err := p.SetDailyLimit(ctx, decimal.RequireFromString("-10")); err != nil {
		t.Fatalf("SetDailyLimit(-10): %v", err)
	}
	if !p.DailyLimit().Equal(decimal.RequireFromString("-10")) {
		t.Errorf("limit = %s, want -10", p.DailyLimit())
	}

	if err := p.SetCurrency(ctx, "gold pieces"); err != nil {
		t.Fatalf("SetCurrency: %v", err)
	}
	if p.Currency() != "gold pieces" {
		t.Errorf("currency = %q, want the string handed in", p.Currency())
	}
}

func TestPreferencesInvalidThemeIgnored(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(ctx, kvstore.NewMemoryStore())

	if err := p.SetTheme(ctx, core.Theme("sepia")); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if p.Theme() != core.ThemeDark {
		t.Errorf("unknown theme must be ignored, theme = %q", p.Theme())
	}
}

func TestPreferencesToggleTheme(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(ctx, kvstore.NewMemoryStore())

	next, err := p.ToggleTheme(ctx)
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if next != core.ThemeLight || p.Theme() != core.ThemeLight {
		t.Errorf("first toggle = %q, want light", next)
	}

	next, _ = p.ToggleTheme(ctx)
	if next != core.ThemeDark {
		t.Errorf("second toggle = %q, want dark", next)
	}
}

func TestPreferencesThemeListener(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(ctx, kvstore.NewMemoryStore())

	var seen []core.Theme
	p.OnThemeChange(func(theme core.Theme) { seen = append(seen, theme) })

	// Fired once at registration with the current theme
	if len(seen) != 1 || seen[0] != core.ThemeDark {
		t.Fatalf("listener at registration saw %v, want [dark]", seen)
	}

	_ = p.SetTheme(ctx, core.ThemeLight)
	if len(seen) != 2 || seen[1] != core.ThemeLight {
		t.Errorf("listener after SetTheme saw %v, want [dark light]", seen)
	}

	// Ignored values never notify
	_ = p.SetTheme(ctx, core.Theme("sepia"))
	if len(seen) != 2 {
		t.Errorf("invalid theme must not notify, saw %v", seen)
	}
}

func TestPreferencesCorruptLimitRecovered(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	if err := store.Set(ctx, KeyDailyLimit, "lots"); err != nil {
		t.Fatal(err)
	}

	p := NewPreferences(ctx, store)
	if !p.DailyLimit().IsZero() {
		t.Errorf("unreadable limit should reset to zero, got %s", p.DailyLimit())
	}
}
