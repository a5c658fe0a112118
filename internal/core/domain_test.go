package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validExpense() Expense {
	return Expense{
		ID:       "exp-1",
		Amount:   decimal.RequireFromString("15.50"),
		Category: "Food",
		Date:     time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		Note:     "Lunch",
	}
}

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{name: "valid", mutate: func(e *Expense) {}},
		{name: "no note", mutate: func(e *Expense) { e.Note = "" }},
		{name: "zero amount", mutate: func(e *Expense) { e.Amount = decimal.Zero }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = decimal.RequireFromString("-3") }, wantErr: ErrInvalidAmount},
		{name: "empty category", mutate: func(e *Expense) { e.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "blank category", mutate: func(e *Expense) { e.Category = "   " }, wantErr: ErrEmptyCategory},
		{name: "zero date", mutate: func(e *Expense) { e.Date = time.Time{} }, wantErr: ErrZeroDate},
		{name: "note too long", mutate: func(e *Expense) { e.Note = strings.Repeat("x", 201) }, wantErr: ErrNoteTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExpense()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false, want true", err)
			}
		})
	}
}

func TestBuiltinCategories(t *testing.T) {
	if len(BuiltinCategories) != 7 {
		t.Fatalf("len(BuiltinCategories) = %d, want 7", len(BuiltinCategories))
	}
	for _, c := range BuiltinCategories {
		if !IsBuiltinCategory(c) {
			t.Errorf("IsBuiltinCategory(%q) = false", c)
		}
	}
	if IsBuiltinCategory("food") {
		t.Error("built-in match should be case-sensitive")
	}
	if IsBuiltinCategory("Coffee") {
		t.Error("IsBuiltinCategory(Coffee) = true, want false")
	}
}

func TestThemeValid(t *testing.T) {
	if !ThemeDark.Valid() || !ThemeLight.Valid() {
		t.Error("dark and light must be valid themes")
	}
	if Theme("sepia").Valid() {
		t.Error("unknown theme must be invalid")
	}
}
