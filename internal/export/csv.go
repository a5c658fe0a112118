// Package export renders the full expense collection as downloadable CSV.
package export

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"dailyfuel/internal/core"
)

// ErrNoExpenses signals that there is nothing to export; the caller turns
// it into a user-visible notice instead of an empty download.
var ErrNoExpenses = errors.New("no expenses to export")

const header = "ID,Amount,Category,Date,Note,IsRecurring"

// Render produces the CSV text: the fixed header followed by one row per
// record in collection order. Only the note is quoted; embedded quotes are
// doubled per RFC 4180.
func Render(items []core.Expense) (string, error) {
	if len(items) == 0 {
		return "", ErrNoExpenses
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, e := range items {
		b.WriteString(e.ID)
		b.WriteByte(',')
		b.WriteString(e.Amount.String())
		b.WriteByte(',')
		b.WriteString(e.Category)
		b.WriteByte(',')
		b.WriteString(e.Date.Format(time.RFC3339))
		b.WriteByte(',')
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(e.Note, `"`, `""`))
		b.WriteByte('"')
		b.WriteByte(',')
		b.WriteString(strconv.FormatBool(e.IsRecurring))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Filename returns the suggested download name for an export taken at now.
func Filename(now time.Time) string {
	return "dailyfuel_export_" + now.Format("2006-01-02") + ".csv"
}
