// Package services holds the stateful components of the tracker: the
// expense ledger, the category registry and the user preferences. Each one
// owns its keys in the persistent store and mirrors every mutation to it
// before returning.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dailyfuel/internal/core"
	"dailyfuel/internal/kvstore"
)

// KeyExpenses is the storage key owned by the Ledger.
const KeyExpenses = "dailyfuel_expenses"

// ExpenseInput carries the caller-supplied fields for a new expense.
// A zero Date means "now"; IsRecurring defaults to false.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Note        string
	IsRecurring bool
}

// ExpenseUpdate is a partial merge against an existing expense. Nil fields
// are left untouched. The ID is immutable and has no field here.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    *string
	Date        *time.Time
	Note        *string
	IsRecurring *bool
}

// Ledger is the single source of truth for expense records: an in-memory
// ordered collection, newest-inserted first, re-serialized in full to the
// store on every mutation. Insertion order is a display convenience only;
// date correctness comes from the record dates, not the order.
type Ledger struct {
	mu    sync.Mutex
	store kvstore.Store
	items []core.Expense

	now   func() time.Time
	newID func() string
}

func NewLedger(ctx context.Context, store kvstore.Store) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	l.load(ctx)
	return l
}

// load restores the persisted collection. Missing, unreadable or corrupt
// state all recover to an empty ledger; corruption is logged so it stays
// observable even though it is never surfaced to the user.
func (l *Ledger) load(ctx context.Context) {
	raw, ok, err := l.store.Get(ctx, KeyExpenses)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read expenses, starting empty",
			"component", "ledger", "error", err)
		return
	}
	if !ok {
		return
	}

	var items []core.Expense
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.WarnContext(ctx, "Stored expenses corrupt, recovered with empty ledger",
			"component", "ledger", "error", err)
		return
	}
	l.items = items
}

// Add synthesizes a new record from in, prepends it and persists. The
// returned expense is in the ledger even when err is non-nil: a persistence
// failure keeps the in-memory mutation and reports the error for logging.
func (l *Ledger) Add(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	e := core.Expense{
		ID:          l.newID(),
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		Note:        in.Note,
		IsRecurring: in.IsRecurring,
	}
	if e.Date.IsZero() {
		e.Date = l.now()
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]core.Expense{e}, l.items...)
	return e, l.persistLocked(ctx)
}

// Update merges changes into the record with the given id. A missing id
// returns core.ErrNotFound, which callers treat as already-consistent.
func (l *Ledger) Update(ctx context.Context, id string, changes ExpenseUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexLocked(id)
	if idx < 0 {
		return core.ErrNotFound
	}

	e := l.items[idx]
	if changes.Amount != nil {
		e.Amount = *changes.Amount
	}
	if changes.Category != nil {
		e.Category = *changes.Category
	}
	if changes.Date != nil {
		e.Date = *changes.Date
	}
	if changes.Note != nil {
		e.Note = *changes.Note
	}
	if changes.IsRecurring != nil {
		e.IsRecurring = *changes.IsRecurring
	}
	if err := e.Validate(); err != nil {
		return err
	}

	l.items[idx] = e
	return l.persistLocked(ctx)
}

// Delete removes the record with the given id. Deletion is permanent; a
// missing id returns core.ErrNotFound.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexLocked(id)
	if idx < 0 {
		return core.ErrNotFound
	}

	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return l.persistLocked(ctx)
}

// Clear empties the collection.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	return l.persistLocked(ctx)
}

// LoadSamples prepends the demo records at fixed offsets in the past,
// keeping whatever is already in the ledger.
func (l *Ledger) LoadSamples(ctx context.Context) error {
	now := l.now()
	samples := []core.Expense{
		{ID: l.newID(), Amount: decimal.RequireFromString("15.50"), Category: "Food", Date: now.Add(-2 * time.Hour), Note: "Lunch"},
		{ID: l.newID(), Amount: decimal.RequireFromString("45.00"), Category: "Transport", Date: now.Add(-24 * time.Hour), Note: "Gas"},
		{ID: l.newID(), Amount: decimal.RequireFromString("120.00"), Category: "Shopping", Date: now.Add(-48 * time.Hour), Note: "Groceries"},
		{ID: l.newID(), Amount: decimal.RequireFromString("25.00"), Category: "Entertainment", Date: now.Add(-5 * time.Hour), Note: "Cinema"},
		{ID: l.newID(), Amount: decimal.RequireFromString("9.99"), Category: "Bills", Date: now.Add(-3 * 24 * time.Hour), Note: "Netflix", IsRecurring: true},
		{ID: l.newID(), Amount: decimal.RequireFromString("200.00"), Category: "Bills", Date: now.Add(-35 * 24 * time.Hour), Note: "Last month rent"},
		{ID: l.newID(), Amount: decimal.RequireFromString("80.00"), Category: "Food", Date: now.Add(-40 * 24 * time.Hour), Note: "Dinner party"},
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(samples, l.items...)
	return l.persistLocked(ctx)
}

// Expenses returns a snapshot copy of the collection for aggregation and
// display. Mutating the returned slice never touches the ledger.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Expense(nil), l.items...)
}

// Size returns the number of records in the ledger.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *Ledger) indexLocked(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) persistLocked(ctx context.Context) error {
	items := l.items
	if items == nil {
		items = []core.Expense{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal expenses: %w", err)
	}
	if err := l.store.Set(ctx, KeyExpenses, string(data)); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expenses",
			"component", "ledger", "count", len(items), "error", err)
		return fmt.Errorf("persist expenses: %w", err)
	}
	return nil
}
