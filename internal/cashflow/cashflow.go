// Package cashflow produces a monthly cash-basis trend from transaction
// totals. This is deliberately not the general ledger: classification works
// on each transaction's type and total amount, never on its journal
// entries, trading accrual accuracy for a cheap cash trend. Keep it a
// separate code path from package ledger.
package cashflow

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally/internal/model"
)

// DefaultMonths is the projection horizon when Options.Months is zero.
const DefaultMonths = 12

// Options controls a projection.
type Options struct {
	// Months is the number of consecutive whole months, ending at the
	// current month. Zero means DefaultMonths.
	Months int
	// Now supplies the clock; nil means time.Now. The current month is the
	// window's last bucket.
	Now func() time.Time
	// IncludeOpening seeds the running balance with the net flow of all
	// transactions strictly before the window.
	IncludeOpening bool
}

// Point is one month of the projected running cash balance.
type Point struct {
	Month   string // e.g. "Jan 2026"
	Balance decimal.Decimal
}

// Project classifies transactions into cash inflow and outflow by type and
// accumulates a running balance per month. Receipts and sales flow in,
// payments and expenses flow out, everything else contributes zero.
func Project(txs []model.Transaction, opts Options) []Point {
	months := opts.Months
	if months <= 0 {
		months = DefaultMonths
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	cur := now()
	windowStart := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, cur.Location()).AddDate(0, -(months - 1), 0)

	balance := decimal.Zero
	flows := make(map[int]decimal.Decimal, months)
	for _, tx := range txs {
		flow := classify(tx)
		if flow.IsZero() {
			continue
		}
		if tx.Date.Before(windowStart) {
			if opts.IncludeOpening {
				balance = balance.Add(flow)
			}
			continue
		}
		idx := monthIndex(windowStart, tx.Date)
		if idx >= 0 && idx < months {
			flows[idx] = flows[idx].Add(flow)
		}
	}

	points := make([]Point, 0, months)
	for i := 0; i < months; i++ {
		balance = balance.Add(flows[i])
		points = append(points, Point{
			Month:   windowStart.AddDate(0, i, 0).Format("Jan 2006"),
			Balance: balance,
		})
	}
	return points
}

func classify(tx model.Transaction) decimal.Decimal {
	switch tx.Type {
	case model.TypeReceipt, model.TypeSale:
		return tx.Total
	case model.TypePayment, model.TypeExpense:
		return tx.Total.Neg()
	default:
		return decimal.Zero
	}
}

// monthIndex counts whole months from the window start to a date's month.
func monthIndex(windowStart, d time.Time) int {
	return (d.Year()-windowStart.Year())*12 + int(d.Month()) - int(windowStart.Month())
}
