package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryTotals(t *testing.T) {
	tx := Transaction{
		Entries: []JournalEntry{
			{AccountCode: "1200", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "4000", Credit: decimal.NewFromInt(600)},
			{AccountCode: "4010", Credit: decimal.NewFromInt(400)},
		},
	}
	debits, credits := tx.EntryTotals()
	assert.True(t, debits.Equal(decimal.NewFromInt(1000)))
	assert.True(t, credits.Equal(decimal.NewFromInt(1000)))
}

func TestEntryTotals_Empty(t *testing.T) {
	debits, credits := Transaction{}.EntryTotals()
	assert.True(t, debits.IsZero())
	assert.True(t, credits.IsZero())
}

func TestNormal_DefaultsToDebit(t *testing.T) {
	assert.Equal(t, NormalDebit, Account{Code: "1000"}.Normal())
	assert.Equal(t, NormalCredit, Account{Code: "4000", NormalBalance: NormalCredit}.Normal())
	assert.Equal(t, NormalDebit, Account{Code: "5000", NormalBalance: NormalDebit}.Normal())
}
