package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// NormalBalance says which side of an entry increases an account.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// Account represents a row in chart-of-accounts.csv. Code is the unique,
// immutable key that journal entries reference.
type Account struct {
	Code          string
	Name          string
	Type          AccountType
	NormalBalance NormalBalance
	Description   string
}

// Normal returns the account's normal balance, defaulting to debit when unset.
func (a Account) Normal() NormalBalance {
	if a.NormalBalance == NormalCredit {
		return NormalCredit
	}
	return NormalDebit
}
