package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"dailyfuel/internal/core"
	"dailyfuel/internal/kvstore"
)

// Storage keys owned by Preferences. Scalars are persisted as plain text,
// not JSON.
const (
	KeyDailyLimit = "dailyfuel_limit"
	KeyCurrency   = "dailyfuel_currency"
	KeyTheme      = "dailyfuel_theme"
)

const DefaultCurrency = "$"

// Preferences holds the three independently persisted user settings: the
// daily budget limit (zero disables the budget view), the currency symbol
// and the theme. There is no cross-field invariant.
//
// The limit accepts any decimal including negatives, and the currency
// accepts any string; callers that need a sane budget rely on the budget
// view treating non-positive limits as disabled.
type Preferences struct {
	mu       sync.Mutex
	store    kvstore.Store
	limit    decimal.Decimal
	currency string
	theme    core.Theme
	onTheme  func(core.Theme)
}

func NewPreferences(ctx context.Context, store kvstore.Store) *Preferences {
	p := &Preferences{
		store:    store,
		currency: DefaultCurrency,
		theme:    core.ThemeDark,
	}
	p.load(ctx)
	return p
}

func (p *Preferences) load(ctx context.Context) {
	if raw, ok, err := p.store.Get(ctx, KeyDailyLimit); err == nil && ok {
		if limit, perr := decimal.NewFromString(raw); perr == nil {
			p.limit = limit
		} else {
			slog.WarnContext(ctx, "Stored daily limit unreadable, reset to zero",
				"component", "prefs", "value", raw, "error", perr)
		}
	} else if err != nil {
		slog.WarnContext(ctx, "Failed to read daily limit, using zero",
			"component", "prefs", "error", err)
	}

	if raw, ok, err := p.store.Get(ctx, KeyCurrency); err == nil && ok && raw != "" {
		p.currency = raw
	}

	if raw, ok, err := p.store.Get(ctx, KeyTheme); err == nil && ok {
		if t := core.Theme(raw); t.Valid() {
			p.theme = t
		}
	}
}

// OnThemeChange registers the process-wide presentation hook and fires it
// once with the current theme, so the styling layer is in sync from startup.
func (p *Preferences) OnThemeChange(fn func(core.Theme)) {
	p.mu.Lock()
	p.onTheme = fn
	theme := p.theme
	p.mu.Unlock()

	if fn != nil {
		fn(theme)
	}
}

func (p *Preferences) DailyLimit() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.limit
}

func (p *Preferences) SetDailyLimit(ctx context.Context, limit decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limit = limit
	return p.persistLocked(ctx, KeyDailyLimit, limit.String())
}

func (p *Preferences) Currency() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currency
}

func (p *Preferences) SetCurrency(ctx context.Context, currency string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currency = currency
	return p.persistLocked(ctx, KeyCurrency, currency)
}

func (p *Preferences) Theme() core.Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// SetTheme switches the theme and notifies the presentation hook. Unknown
// theme values are ignored.
func (p *Preferences) SetTheme(ctx context.Context, theme core.Theme) error {
	if !theme.Valid() {
		return nil
	}

	p.mu.Lock()
	p.theme = theme
	fn := p.onTheme
	err := p.persistLocked(ctx, KeyTheme, string(theme))
	p.mu.Unlock()

	// Listener runs outside the lock: it belongs to the styling layer and
	// may call back into Preferences.
	if fn != nil {
		fn(theme)
	}
	return err
}

// ToggleTheme flips between dark and light and returns the new theme.
func (p *Preferences) ToggleTheme(ctx context.Context) (core.Theme, error) {
	next := core.ThemeLight
	if p.Theme() == core.ThemeLight {
		next = core.ThemeDark
	}
	return next, p.SetTheme(ctx, next)
}

func (p *Preferences) persistLocked(ctx context.Context, key, value string) error {
	if err := p.store.Set(ctx, key, value); err != nil {
		slog.ErrorContext(ctx, "Failed to persist preference",
			"component", "prefs", "key", key, "error", err)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
