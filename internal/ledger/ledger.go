// Package ledger derives account balances from posted transactions: the
// general ledger with running balances, per-account summaries, and the
// point-in-time trial balance. All computation is pure and in-memory;
// identical inputs always produce identical output.
package ledger

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally/internal/journal"
	"github.com/tallybooks/tally/internal/model"
)

var (
	// ErrInvalidWindow is returned when a window's start is after its end.
	ErrInvalidWindow = errors.New("ledger: window start is after end")
	// ErrNilRegistry is returned when no account registry is supplied.
	ErrNilRegistry = errors.New("ledger: nil account registry")
)

// Registry resolves journal entry account codes against the chart of
// accounts.
type Registry interface {
	Lookup(code string) (model.Account, bool)
}

// Window bounds aggregation to transaction dates in [Start, End], inclusive
// both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether a date falls inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Line is one general-ledger row for an account: the entry plus the
// account's running balance after applying it.
type Line struct {
	Date        time.Time
	Description string
	Reference   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// AccountSummary is an account's activity totals and closing balance over
// the aggregated window.
type AccountSummary struct {
	Code           string
	Name           string
	Type           model.AccountType
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
	ClosingBalance decimal.Decimal
}

// Report is the aggregated general ledger. Summaries are ordered by account
// code; Lines holds each account's chronological ledger rows. Problems lists
// the transactions and entries excluded for data-quality reasons.
type Report struct {
	Summaries []AccountSummary
	Lines     map[string][]Line
	Problems  []journal.Problem
}

type accum struct {
	account model.Account
	debits  decimal.Decimal
	credits decimal.Decimal
	balance decimal.Decimal
	lines   []Line
}

// Build folds transactions into per-account totals and running-balance
// sequences. A nil window means all transactions. The report covers activity
// within the window only; no prior-period opening balance is carried
// forward. Unbalanced transactions are excluded whole, entries with unknown
// account codes individually; both appear in Report.Problems rather than
// aborting the computation.
func Build(reg Registry, txs []model.Transaction, window *Window) (*Report, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if window != nil && window.Start.After(window.End) {
		return nil, ErrInvalidWindow
	}

	ordered := chronological(txs, window)

	report := &Report{Lines: make(map[string][]Line)}
	accums := make(map[string]*accum)

	for _, tx := range ordered {
		if diff, ok := journal.Balanced(tx); !ok {
			report.Problems = append(report.Problems, journal.Problem{
				Kind:          journal.ProblemUnbalanced,
				TransactionID: tx.ID,
				Diff:          diff,
			})
			continue
		}

		for _, e := range tx.Entries {
			acct, ok := reg.Lookup(e.AccountCode)
			if !ok {
				report.Problems = append(report.Problems, journal.Problem{
					Kind:          journal.ProblemUnmappedAccount,
					TransactionID: tx.ID,
					AccountCode:   e.AccountCode,
				})
				continue
			}

			a := accums[acct.Code]
			if a == nil {
				a = &accum{account: acct}
				accums[acct.Code] = a
			}

			a.debits = a.debits.Add(e.Debit)
			a.credits = a.credits.Add(e.Credit)
			if acct.Normal() == model.NormalDebit {
				a.balance = a.balance.Add(e.Debit).Sub(e.Credit)
			} else {
				a.balance = a.balance.Add(e.Credit).Sub(e.Debit)
			}

			desc := e.Description
			if desc == "" {
				desc = tx.Description
			}
			a.lines = append(a.lines, Line{
				Date:        tx.Date,
				Description: desc,
				Reference:   tx.Reference,
				Debit:       e.Debit,
				Credit:      e.Credit,
				Balance:     a.balance,
			})
		}
	}

	codes := make([]string, 0, len(accums))
	for code := range accums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		a := accums[code]
		// No-activity accounts are noise, not errors.
		if a.debits.IsZero() && a.credits.IsZero() && a.balance.IsZero() {
			continue
		}
		report.Summaries = append(report.Summaries, AccountSummary{
			Code:           a.account.Code,
			Name:           a.account.Name,
			Type:           a.account.Type,
			TotalDebits:    a.debits,
			TotalCredits:   a.credits,
			ClosingBalance: a.balance,
		})
		report.Lines[code] = a.lines
	}

	return report, nil
}

// chronological filters transactions to the window and sorts by date
// ascending. Same-date transactions order by ID ascending, a deterministic
// tie-break independent of input order.
func chronological(txs []model.Transaction, window *Window) []model.Transaction {
	ordered := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if window == nil || window.Contains(tx.Date) {
			ordered = append(ordered, tx)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}
