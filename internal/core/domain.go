package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type (
	Theme string

	Expense struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Date        time.Time       `json:"date"`
		Note        string          `json:"note,omitempty"`
		IsRecurring bool            `json:"isRecurring"`
	}
)

// BuiltinCategories is the fixed category set every installation starts
// with. User-defined categories are appended after these, never interleaved
// and never allowed to shadow them.
var BuiltinCategories = []string{
	"Food", "Transport", "Shopping", "Entertainment", "Health", "Bills", "Other",
}

// CurrencySymbols enumerates the symbols offered by the settings UI.
// Preferences accept any string; this set is advisory, not enforced.
var CurrencySymbols = []string{"$", "€", "£", "₹", "¥", "kr"}

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrZeroDate      = errors.New("date cannot be zero")
	ErrNoteTooLong   = errors.New("note too long (max 200 characters)")
	ErrNotFound      = errors.New("expense not found")
)

// IsValidationError reports whether err is one of the input-rejection
// sentinels, as opposed to a storage failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrZeroDate) ||
		errors.Is(err, ErrNoteTooLong)
}

// IsBuiltinCategory reports whether name is one of the fixed categories.
// The match is case-sensitive, like every other category comparison.
func IsBuiltinCategory(name string) bool {
	for _, c := range BuiltinCategories {
		if c == name {
			return true
		}
	}
	return false
}

func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

func (e Expense) Validate() error {
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if len(e.Note) > 200 {
		return ErrNoteTooLong
	}
	return nil
}
