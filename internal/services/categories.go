package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"dailyfuel/internal/core"
	"dailyfuel/internal/kvstore"
)

// KeyCustomCategories is the storage key owned by the Registry.
const KeyCustomCategories = "dailyfuel_custom_categories"

// Registry composes the fixed built-in categories with the user-defined
// custom ones into a single ordered list. Built-ins always come first and
// cannot be removed; customs keep their insertion order. Names are compared
// case-sensitively and never duplicated across the combined list.
//
// Invalid input (empty names, duplicates, removing a built-in) is an
// idempotent no-op, not an error.
type Registry struct {
	mu      sync.Mutex
	store   kvstore.Store
	customs []string
}

func NewRegistry(ctx context.Context, store kvstore.Store) *Registry {
	r := &Registry{store: store}
	r.load(ctx)
	return r
}

func (r *Registry) load(ctx context.Context) {
	raw, ok, err := r.store.Get(ctx, KeyCustomCategories)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read custom categories, starting empty",
			"component", "categories", "error", err)
		return
	}
	if !ok {
		return
	}

	var customs []string
	if err := json.Unmarshal([]byte(raw), &customs); err != nil {
		slog.WarnContext(ctx, "Stored custom categories corrupt, recovered with empty list",
			"component", "categories", "error", err)
		return
	}
	r.customs = customs
}

// List returns built-ins followed by customs, as a fresh slice.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(core.BuiltinCategories)+len(r.customs))
	out = append(out, core.BuiltinCategories...)
	out = append(out, r.customs...)
	return out
}

// Customs returns only the user-defined categories, the removable part of
// the list.
func (r *Registry) Customs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.customs...)
}

// Contains reports whether name is anywhere in the combined list.
func (r *Registry) Contains(name string) bool {
	if core.IsBuiltinCategory(name) {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexLocked(name) >= 0
}

// Add appends a trimmed name to the custom list. Empty names and names
// already present anywhere in the combined list are ignored.
func (r *Registry) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || core.IsBuiltinCategory(name) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexLocked(name) >= 0 {
		return nil
	}
	r.customs = append(r.customs, name)
	return r.persistLocked(ctx)
}

// Remove deletes name from the custom list. Built-ins and unknown names are
// ignored.
func (r *Registry) Remove(ctx context.Context, name string) error {
	if core.IsBuiltinCategory(name) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(name)
	if idx < 0 {
		return nil
	}
	r.customs = append(r.customs[:idx], r.customs[idx+1:]...)
	return r.persistLocked(ctx)
}

func (r *Registry) indexLocked(name string) int {
	for i, c := range r.customs {
		if c == name {
			return i
		}
	}
	return -1
}

func (r *Registry) persistLocked(ctx context.Context) error {
	customs := r.customs
	if customs == nil {
		customs = []string{}
	}
	data, err := json.Marshal(customs)
	if err != nil {
		return fmt.Errorf("marshal custom categories: %w", err)
	}
	if err := r.store.Set(ctx, KeyCustomCategories, string(data)); err != nil {
		slog.ErrorContext(ctx, "Failed to persist custom categories",
			"component", "categories", "error", err)
		return fmt.Errorf("persist custom categories: %w", err)
	}
	return nil
}
