package accounts

import "github.com/tallybooks/tally/internal/model"

// DefaultChart returns the default chart of accounts for a new set of books.
// Assets and expenses carry a debit normal balance; liabilities, equity and
// revenue carry credit.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1000", Name: "Cash", Type: model.AccountTypeAsset, NormalBalance: model.NormalDebit, Description: "Cash on hand and at bank"},
		{Code: "1200", Name: "Accounts Receivable", Type: model.AccountTypeAsset, NormalBalance: model.NormalDebit, Description: "Amounts owed by customers"},
		{Code: "1500", Name: "Equipment", Type: model.AccountTypeAsset, NormalBalance: model.NormalDebit},
		{Code: "2000", Name: "Accounts Payable", Type: model.AccountTypeLiability, NormalBalance: model.NormalCredit, Description: "Amounts owed to suppliers"},
		{Code: "2100", Name: "Sales Tax Payable", Type: model.AccountTypeLiability, NormalBalance: model.NormalCredit},
		{Code: "3000", Name: "Owner's Equity", Type: model.AccountTypeEquity, NormalBalance: model.NormalCredit},
		{Code: "3100", Name: "Retained Earnings", Type: model.AccountTypeEquity, NormalBalance: model.NormalCredit},
		{Code: "4000", Name: "Sales Revenue", Type: model.AccountTypeRevenue, NormalBalance: model.NormalCredit, Description: "Income from sales"},
		{Code: "4100", Name: "Service Revenue", Type: model.AccountTypeRevenue, NormalBalance: model.NormalCredit},
		{Code: "5000", Name: "Cost of Goods Sold", Type: model.AccountTypeExpense, NormalBalance: model.NormalDebit},
		{Code: "5100", Name: "Rent Expense", Type: model.AccountTypeExpense, NormalBalance: model.NormalDebit},
		{Code: "5200", Name: "Salaries Expense", Type: model.AccountTypeExpense, NormalBalance: model.NormalDebit},
		{Code: "5300", Name: "Office Expense", Type: model.AccountTypeExpense, NormalBalance: model.NormalDebit, Description: "Supplies, software, sundries"},
	}
}
