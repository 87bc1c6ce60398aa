package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally/internal/journal"
	"github.com/tallybooks/tally/internal/model"
)

// TrialBalanceRow is one account's signed balance as of the report date,
// split into the debit or credit column. The raw balance is debits minus
// credits with no normal-balance flip: positive lands in Debit, the absolute
// value of a negative in Credit.
type TrialBalanceRow struct {
	Code   string
	Name   string
	Type   model.AccountType
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalanceReport is the as-of-date snapshot of every account balance.
// For a closed set of balanced transactions the column totals must be equal;
// an out-of-balance report signals upstream data corruption and is returned
// anyway so callers can surface the damage.
type TrialBalanceReport struct {
	AsOf        time.Time
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Problems    []journal.Problem
}

// Balanced reports whether the debit and credit columns total equal within
// epsilon.
func (r *TrialBalanceReport) Balanced() bool {
	return r.TotalDebit.Sub(r.TotalCredit).Abs().LessThanOrEqual(journal.Epsilon)
}

// TrialBalance snapshots every account's raw signed balance over the full
// history up to and including asOf. Unbalanced transactions are excluded and
// reported, as in Build; excluding an unmapped entry can itself unbalance
// the columns, which Balanced then exposes.
func TrialBalance(reg Registry, txs []model.Transaction, asOf time.Time) (*TrialBalanceReport, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	report := &TrialBalanceReport{
		AsOf:        asOf,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	type raw struct {
		account model.Account
		balance decimal.Decimal
	}
	balances := make(map[string]*raw)

	for _, tx := range txs {
		if tx.Date.After(asOf) {
			continue
		}

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

			b := balances[acct.Code]
			if b == nil {
				b = &raw{account: acct}
				balances[acct.Code] = b
			}
			b.balance = b.balance.Add(e.Debit).Sub(e.Credit)
		}
	}

	codes := make([]string, 0, len(balances))
	for code := range balances {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		b := balances[code]
		if b.balance.IsZero() {
			continue
		}

		row := TrialBalanceRow{
			Code: b.account.Code,
			Name: b.account.Name,
			Type: b.account.Type,
		}
		if b.balance.IsPositive() {
			row.Debit = b.balance
			report.TotalDebit = report.TotalDebit.Add(b.balance)
		} else {
			row.Credit = b.balance.Neg()
			report.TotalCredit = report.TotalCredit.Add(b.balance.Neg())
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}
