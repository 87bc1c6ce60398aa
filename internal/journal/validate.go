package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally/internal/model"
)

// Epsilon is the rounding slack allowed when comparing debit and credit
// totals, in currency units.
var Epsilon = decimal.New(1, -2) // 0.01

// ProblemKind classifies a data-quality finding.
type ProblemKind string

const (
	// ProblemUnbalanced marks a transaction whose debits and credits differ
	// by more than Epsilon. The whole transaction is excluded from
	// aggregation.
	ProblemUnbalanced ProblemKind = "unbalanced-transaction"
	// ProblemUnmappedAccount marks an entry referencing an account code
	// absent from the chart of accounts. Only that entry is excluded.
	ProblemUnmappedAccount ProblemKind = "unmapped-account"
)

// Problem describes one excluded transaction or entry. Problems ride
// alongside successful output; they are never fatal.
type Problem struct {
	Kind          ProblemKind
	TransactionID string
	AccountCode   string          // set for unmapped-account
	Diff          decimal.Decimal // debits minus credits, set for unbalanced
}

func (p Problem) String() string {
	switch p.Kind {
	case ProblemUnbalanced:
		return fmt.Sprintf("transaction %s is unbalanced (debits - credits = %s)", p.TransactionID, p.Diff.StringFixed(2))
	case ProblemUnmappedAccount:
		return fmt.Sprintf("transaction %s references unknown account %s", p.TransactionID, p.AccountCode)
	default:
		return fmt.Sprintf("transaction %s: %s", p.TransactionID, p.Kind)
	}
}

// AccountChecker tests whether an account code exists in the chart of
// accounts.
type AccountChecker interface {
	Exists(code string) bool
}

// Balanced computes debits minus credits over a transaction's entries and
// reports whether the transaction satisfies the accounting identity within
// Epsilon.
func Balanced(tx model.Transaction) (diff decimal.Decimal, ok bool) {
	debits, credits := tx.EntryTotals()
	diff = debits.Sub(credits)
	return diff, diff.Abs().LessThanOrEqual(Epsilon)
}

// Check inspects one transaction and returns its data-quality problems:
// an unbalanced total, and any entries referencing unknown accounts.
func Check(tx model.Transaction, accounts AccountChecker) []Problem {
	var problems []Problem

	if diff, ok := Balanced(tx); !ok {
		problems = append(problems, Problem{
			Kind:          ProblemUnbalanced,
			TransactionID: tx.ID,
			Diff:          diff,
		})
	}

	for _, e := range tx.Entries {
		if !accounts.Exists(e.AccountCode) {
			problems = append(problems, Problem{
				Kind:          ProblemUnmappedAccount,
				TransactionID: tx.ID,
				AccountCode:   e.AccountCode,
			})
		}
	}

	return problems
}

// CheckAll runs Check over a set of transactions.
func CheckAll(txs []model.Transaction, accounts AccountChecker) []Problem {
	var problems []Problem
	for _, tx := range txs {
		problems = append(problems, Check(tx, accounts)...)
	}
	return problems
}
