package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybooks/tally/internal/accounts"
	"github.com/tallybooks/tally/internal/journal"
	"github.com/tallybooks/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRegistry() *accounts.Service {
	return accounts.NewService([]model.Account{
		{Code: "1000", Name: "Cash", Type: model.AccountTypeAsset, NormalBalance: model.NormalDebit},
		{Code: "1200", Name: "Accounts Receivable", Type: model.AccountTypeAsset, NormalBalance: model.NormalDebit},
		{Code: "4000", Name: "Sales Revenue", Type: model.AccountTypeRevenue, NormalBalance: model.NormalCredit},
		{Code: "5100", Name: "Rent Expense", Type: model.AccountTypeExpense, NormalBalance: model.NormalDebit},
	})
}

func tx(id string, d time.Time, entries ...model.JournalEntry) model.Transaction {
	return model.Transaction{ID: id, Date: d, Type: model.TypeJournal, Entries: entries}
}

func entry(code, debit, credit string) model.JournalEntry {
	e := model.JournalEntry{AccountCode: code}
	if debit != "" {
		e.Debit = dec(debit)
	}
	if credit != "" {
		e.Credit = dec(credit)
	}
	return e
}

func summaryFor(t *testing.T, r *Report, code string) AccountSummary {
	t.Helper()
	for _, s := range r.Summaries {
		if s.Code == code {
			return s
		}
	}
	t.Fatalf("no summary for account %s", code)
	return AccountSummary{}
}

// Invoicing then partial receipt against Accounts Receivable: debits 1000,
// credits 400, closing 600 on a debit-normal account.
func TestBuild_ReceivableActivity(t *testing.T) {
	txs := []model.Transaction{
		tx("t1", date(2026, time.January, 5),
			entry("1200", "1000", ""),
			entry("4000", "", "1000"),
		),
		tx("t2", date(2026, time.January, 20),
			entry("1000", "400", ""),
			entry("1200", "", "400"),
		),
	}

	report, err := Build(testRegistry(), txs, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Problems)

	ar := summaryFor(t, report, "1200")
	assert.True(t, ar.TotalDebits.Equal(dec("1000")))
	assert.True(t, ar.TotalCredits.Equal(dec("400")))
	assert.True(t, ar.ClosingBalance.Equal(dec("600")))
}

// Credit-normal accounts grow with credits.
func TestBuild_CreditNormalBalance(t *testing.T) {
	txs := []model.Transaction{
		tx("t1", date(2026, time.January, 5),
			entry("1200", "1000", ""),
			entry("4000", "", "1000"),
		),
	}

	report, err := Build(testRegistry(), txs, nil)
	require.NoError(t, err)

	rev := summaryFor(t, report, "4000")
	assert.True(t, rev.ClosingBalance.Equal(dec("1000")))
}

func TestBuild_RunningBalanceMatchesClosing(t *testing.T) {
	txs := []model.Transaction{
		tx("t1", date(2026, time.January, 5), entry("1200", "1000", ""), entry("4000", "", "1000")),
		tx("t2", date(2026, time.January, 10), entry("1200", "250", ""), entry("4000", "", "250")),
		tx("t3", date(2026, time.January, 20), entry("1000", "400", ""), entry("1200", "", "400")),
	}

	report, err := Build(testRegistry(), txs, nil)
	require.NoError(t, err)

	for _, s := range report.Summaries {
		lines := report.Lines[s.Code]
		require.NotEmpty(t, lines, "account %s", s.Code)
		assert.True(t, lines[len(lines)-1].Balance.Equal(s.ClosingBalance),
			"account %s: last running balance %s != closing %s",
			s.Code, lines[len(lines)-1].Balance, s.ClosingBalance)
	}

	// The receivable's running sequence is 1000, 1250, 850.
	ar := report.Lines["1200"]
	require.Len(t, ar, 3)
	assert.True(t, ar[0].Balance.Equal(dec("1000")))
	assert.True(t, ar[1].Balance.Equal(dec("1250")))
	assert.True(t, ar[2].Balance.Equal(dec("850")))
}

func TestBuild_UnbalancedExcludedWhole(t *testing.T) {
	txs := []model.Transaction{
		tx("good", date(2026, time.January, 5), entry("1200", "100", ""), entry("4000", "", "100")),
		tx("bad", date(2026, time.January, 6), entry("1200", "100", ""), entry("4000", "", "60")),
	}

	report, err := Build(testRegistry(), txs, nil)
	require.NoError(t, err)

	require.Len(t, report.Problems, 1)
	assert.Equal(t, journal.ProblemUnbalanced, report.Problems[0].Kind)
	assert.Equal(t, "bad", report.Problems[0].TransactionID)

	// Nothing from the bad transaction reached any balance.
	ar := summaryFor(t, report, "1200")
	assert.True(t, ar.TotalDebits.Equal(dec("100")))
}

func TestBuild_UnmappedEntryExcludedAndReported(t *testing.T) {
	txs := []model.Transaction{
		tx("t1", date(2026, time.January, 5), entry("9999", "100", ""), entry("4000", "", "100")),
	}

	report, err := Build(testRegistry(), txs, nil)
	require.NoError(t, err)

	require.Len(t, report.Problems, 1)
	assert.Equal(t, journal.ProblemUnmappedAccount, report.Problems[0].Kind)
	assert.Equal(t, "9999", report.Problems[0].AccountCode)

	// The mapped side still aggregates.
	rev := summaryFor(t, report, "4000")
	assert.True(t, rev.TotalCredits.Equal(dec("100")))
}

func TestBuild_WindowInclusive(t *testing.T) {
	txs := []model.Transaction{
		tx("before", date(2026, time.January, 31), entry("1200", "10", ""), entry("4000", "", "10")),
		tx("start", date(2026, time.February, 1), entry("1200", "20", ""), entry("4000", "", "20")),
		tx("end", date(2026, time.February, 28), entry("1200", "30", ""), entry("4000", "", "30")),
		tx("after", date(2026, time.March, 1), entry("1200", "40", ""), entry("4000", "", "40")),
	}

	window := &Window{Start: date(2026, time.February, 1), End: date(2026, time.February, 28)}
	report, err := Build(testRegistry(), txs, window)
	require.NoError(t, err)

	ar := summaryFor(t, report, "1200")
	assert.True(t, ar.TotalDebits.Equal(dec("50")), "only the two February transactions count")
}

func TestBuild_InvalidWindow(t *testing.T) {
	window := &Window{Start: date(2026, time.March, 1), End: date(2026, time.January, 1)}
	_, err := Build(testRegistry(), nil, window)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestBuild_NilRegistry(t *testing.T) {
	_, err := Build(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilRegistry)
}

func TestBuild_EmptyInput(t *testing.T) {
	report, err := Build(testRegistry(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Summaries)
	assert.Empty(t, report.Lines)
	assert.Empty(t, report.Problems)
}

// Same-date transactions order by ID, so a permuted input slice yields an
// identical report.
func TestBuild_OrderIndependent(t *testing.T) {
	a := tx("a", date(2026, time.January, 5), entry("1200", "100", ""), entry("4000", "", "100"))
	b := tx("b", date(2026, time.January, 5), entry("1000", "400", ""), entry("1200", "", "400"))
	c := tx("c", date(2026, time.January, 5), entry("1200", "50", ""), entry("4000", "", "50"))

	first, err := Build(testRegistry(), []model.Transaction{a, b, c}, nil)
	require.NoError(t, err)
	second, err := Build(testRegistry(), []model.Transaction{c, a, b}, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// b sits between a and c in the running sequence: 100, -300, -250.
	ar := first.Lines["1200"]
	require.Len(t, ar, 3)
	assert.True(t, ar[1].Balance.Equal(dec("-300")))
}

func TestBuild_ZeroActivityAccountOmitted(t *testing.T) {
	txs := []model.Transaction{
		tx("t1", date(2026, time.January, 5),
			entry("1200", "0", ""),
			entry("4000", "", "0"),
		),
	}

	report, err := Build(testRegistry(), txs, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Summaries)
	assert.Empty(t, report.Lines)
}

func TestBuild_EntryDescriptionFallsBackToTransaction(t *testing.T) {
	transaction := model.Transaction{
		ID:          "t1",
		Date:        date(2026, time.January, 5),
		Description: "Invoice 42",
		Reference:   "INV-42",
		Entries: []model.JournalEntry{
			{AccountCode: "1200", Debit: dec("100"), Description: "AR for invoice 42"},
			{AccountCode: "4000", Credit: dec("100")},
		},
	}

	report, err := Build(testRegistry(), []model.Transaction{transaction}, nil)
	require.NoError(t, err)

	assert.Equal(t, "AR for invoice 42", report.Lines["1200"][0].Description)
	assert.Equal(t, "Invoice 42", report.Lines["4000"][0].Description)
	assert.Equal(t, "INV-42", report.Lines["4000"][0].Reference)
}
