// Package report is the aggregation engine: pure functions over a snapshot
// of the ledger. Nothing here mutates the input or keeps state between
// calls, so every function is safe to call repeatedly and concurrently from
// any rendering cadence. The reference instant is always an explicit
// parameter; there is no hidden clock.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dailyfuel/internal/core"
)

type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

// TrendMonths is the fixed span of the monthly trend series.
const TrendMonths = 6

// recentLimit caps the list view at the most recent records.
const recentLimit = 20

func (w Window) Valid() bool {
	switch w {
	case WindowToday, WindowWeek, WindowMonth, WindowAll:
		return true
	}
	return false
}

// Filter returns the records whose date falls within [window start, now].
// The week starts on the most recent Sunday at midnight, the month on its
// first instant, both in now's location. WindowAll passes everything
// through untouched.
func Filter(items []core.Expense, now time.Time, w Window) []core.Expense {
	if w == WindowAll {
		return append([]core.Expense(nil), items...)
	}

	start := windowStart(now, w)
	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if e.Date.Before(start) || e.Date.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func windowStart(now time.Time, w Window) time.Time {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch w {
	case WindowToday:
		return day
	case WindowWeek:
		// Weekday is 0 on Sunday, so this lands on the week start
		return day.AddDate(0, 0, -int(day.Weekday()))
	case WindowMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Time{}
}

// Sum totals the amounts of the given records.
func Sum(items []core.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.Amount)
	}
	return total
}

// Breakdown maps each category present in items to its summed amount.
// Categories with no matching records are omitted, not zero-valued, so the
// sum of the values always equals Sum(items).
func Breakdown(items []core.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range items {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// Trend buckets the last TrendMonths calendar months ending with now's
// month, oldest first. Each bucket covers [month start, next month start)
// and is labeled with the month abbreviation.
func Trend(items []core.Expense, now time.Time) []core.TrendBucket {
	y, m, _ := now.Date()
	current := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())

	buckets := make([]core.TrendBucket, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		total := decimal.Zero
		for _, e := range items {
			if !e.Date.Before(start) && e.Date.Before(end) {
				total = total.Add(e.Amount)
			}
		}
		buckets = append(buckets, core.TrendBucket{
			Year:  start.Year(),
			Month: int(start.Month()),
			Label: start.Format("Jan"),
			Total: total,
		})
	}
	return buckets
}

// SearchOptions narrows the list view. Query matches category or note,
// case-insensitively; Category is an exact match; To is extended to the end
// of its calendar day so the range stays inclusive.
type SearchOptions struct {
	Query    string
	Category string
	From     *time.Time
	To       *time.Time
}

// Search filters items by opts and returns the matches sorted by date
// descending, capped at the 20 most recent. Records with equal dates keep
// their input order, so repeated calls over the same snapshot always agree.
func Search(items []core.Expense, opts SearchOptions) []core.Expense {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	var toEnd time.Time
	if opts.To != nil {
		y, m, d := opts.To.Date()
		toEnd = time.Date(y, m, d, 0, 0, 0, 0, opts.To.Location()).AddDate(0, 0, 1)
	}

	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Category), query) &&
			!strings.Contains(strings.ToLower(e.Note), query) {
			continue
		}
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		if opts.From != nil && e.Date.Before(*opts.From) {
			continue
		}
		if opts.To != nil && !e.Date.Before(toEnd) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

// Budget reports today's spend against the daily limit. A limit of zero or
// less disables the budget view entirely. The ratio is capped at 1.0 for
// progress display.
func Budget(items []core.Expense, now time.Time, limit decimal.Decimal) core.BudgetStatus {
	status := core.BudgetStatus{Spent: decimal.Zero, Limit: limit}
	if !limit.IsPositive() {
		return status
	}

	status.Enabled = true
	status.Spent = Sum(Filter(items, now, WindowToday))
	ratio, _ := status.Spent.Div(limit).Float64()
	if ratio > 1 {
		ratio = 1
	}
	status.Ratio = ratio
	status.Over = status.Spent.GreaterThan(limit)
	return status
}
