package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a posted transaction with its business meaning.
type TransactionType string

const (
	TypeSale     TransactionType = "sale"
	TypePurchase TransactionType = "purchase"
	TypeExpense  TransactionType = "expense"
	TypePayment  TransactionType = "payment"
	TypeReceipt  TransactionType = "receipt"
	TypeJournal  TransactionType = "journal"
	TypeTransfer TransactionType = "transfer"
)

// JournalEntry is one debit-or-credit line within a transaction, tagged to
// one account. Well-formed data has exactly one non-zero side, but the model
// tolerates both being set.
type JournalEntry struct {
	AccountCode string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Description string
}

// Transaction is a posted set of journal entries. Transactions are created
// by upstream collaborators and treated as immutable here; the accounting
// identity requires its entries' debits and credits to sum equal.
type Transaction struct {
	ID          string
	Date        time.Time
	Type        TransactionType
	Description string
	Reference   string
	Total       decimal.Decimal // cash-basis transaction total, independent of entries
	Entries     []JournalEntry
}

// EntryTotals returns the sums of the debit and credit sides across entries.
func (t Transaction) EntryTotals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range t.Entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}
