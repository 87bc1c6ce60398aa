package cashflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybooks/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 30, 0, 0, time.UTC) }
}

func cashTx(typ model.TransactionType, d time.Time, total string) model.Transaction {
	return model.Transaction{ID: string(typ) + d.Format("-2006-01-02"), Date: d, Type: typ, Total: dec(total)}
}

func TestProject_SingleMonth(t *testing.T) {
	txs := []model.Transaction{
		cashTx(model.TypeSale, time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), "500"),
		cashTx(model.TypeExpense, time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC), "200"),
	}

	points := Project(txs, Options{Months: 1, Now: fixedNow(2026, time.June, 25)})
	require.Len(t, points, 1)
	assert.Equal(t, "Jun 2026", points[0].Month)
	assert.True(t, points[0].Balance.Equal(dec("300")))
}

func TestProject_RunningBalanceAcrossMonths(t *testing.T) {
	txs := []model.Transaction{
		cashTx(model.TypeReceipt, time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC), "1000"),
		cashTx(model.TypePayment, time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC), "400"),
		cashTx(model.TypeSale, time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC), "250"),
	}

	points := Project(txs, Options{Months: 3, Now: fixedNow(2026, time.June, 15)})
	require.Len(t, points, 3)
	assert.Equal(t, "Apr 2026", points[0].Month)
	assert.True(t, points[0].Balance.Equal(dec("1000")))
	assert.True(t, points[1].Balance.Equal(dec("600")))
	assert.True(t, points[2].Balance.Equal(dec("850")))
}

func TestProject_OpeningBalance(t *testing.T) {
	txs := []model.Transaction{
		// Strictly before the window.
		cashTx(model.TypeReceipt, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), "900"),
		cashTx(model.TypePayment, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "150"),
		// Inside.
		cashTx(model.TypeSale, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), "100"),
	}

	with := Project(txs, Options{Months: 2, Now: fixedNow(2026, time.February, 1), IncludeOpening: true})
	require.Len(t, with, 2)
	assert.True(t, with[0].Balance.Equal(dec("850")), "opening 750 plus January's 100")

	without := Project(txs, Options{Months: 2, Now: fixedNow(2026, time.February, 1)})
	assert.True(t, without[0].Balance.Equal(dec("100")))
}

func TestProject_IgnoresNonCashTypes(t *testing.T) {
	txs := []model.Transaction{
		cashTx(model.TypeJournal, time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC), "5000"),
		cashTx(model.TypeTransfer, time.Date(2026, time.June, 6, 0, 0, 0, 0, time.UTC), "5000"),
		cashTx(model.TypePurchase, time.Date(2026, time.June, 7, 0, 0, 0, 0, time.UTC), "5000"),
	}

	points := Project(txs, Options{Months: 1, Now: fixedNow(2026, time.June, 30)})
	require.Len(t, points, 1)
	assert.True(t, points[0].Balance.IsZero())
}

func TestProject_DefaultTwelveMonths(t *testing.T) {
	points := Project(nil, Options{Now: fixedNow(2026, time.August, 28)})
	require.Len(t, points, DefaultMonths)
	assert.Equal(t, "Sep 2025", points[0].Month)
	assert.Equal(t, "Aug 2026", points[11].Month)
}

func TestProject_WholeCurrentMonth(t *testing.T) {
	// A sale later in the current month than "now" still lands in the
	// current month's bucket.
	txs := []model.Transaction{
		cashTx(model.TypeSale, time.Date(2026, time.June, 28, 0, 0, 0, 0, time.UTC), "75"),
	}

	points := Project(txs, Options{Months: 1, Now: fixedNow(2026, time.June, 2)})
	require.Len(t, points, 1)
	assert.True(t, points[0].Balance.Equal(dec("75")))
}

func TestProject_YearBoundary(t *testing.T) {
	txs := []model.Transaction{
		cashTx(model.TypeSale, time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC), "60"),
		cashTx(model.TypeSale, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "40"),
	}

	points := Project(txs, Options{Months: 2, Now: fixedNow(2026, time.January, 20)})
	require.Len(t, points, 2)
	assert.Equal(t, "Dec 2025", points[0].Month)
	assert.True(t, points[1].Balance.Equal(dec("100")))
}
