package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally/internal/model"
)

// Header is the CSV header for a journal file. One row per journal entry;
// transaction-level columns repeat on every row of the same transaction.
const Header = "transaction_id,date,type,description,reference,total,account_code,entry_description,debit,credit"

const (
	numFields    = 10
	dateFormat   = "2006-01-02"
	colTxID      = 0
	colDate      = 1
	colType      = 2
	colDesc      = 3
	colRef       = 4
	colTotal     = 5
	colAcctCode  = 6
	colEntryDesc = 7
	colDebit     = 8
	colCredit    = 9
)

// ReadTransactions reads a journal CSV, grouping consecutive rows that share
// a transaction_id into one transaction. Input row order is preserved within
// each transaction's entries.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, entry, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if n := len(txs); n > 0 && txs[n-1].ID == tx.ID {
			txs[n-1].Entries = append(txs[n-1].Entries, entry)
			continue
		}
		tx.Entries = []model.JournalEntry{entry}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions as a journal CSV.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"transaction_id", "date", "type", "description", "reference", "total", "account_code", "entry_description", "debit", "credit"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		for _, e := range tx.Entries {
			if err := cw.Write(marshalRow(tx, e)); err != nil {
				return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
			}
		}
	}
	return cw.Error()
}

func marshalRow(tx model.Transaction, e model.JournalEntry) []string {
	row := make([]string, numFields)
	row[colTxID] = tx.ID
	row[colDate] = tx.Date.Format(dateFormat)
	row[colType] = string(tx.Type)
	row[colDesc] = tx.Description
	row[colRef] = tx.Reference
	row[colTotal] = tx.Total.String()
	row[colAcctCode] = e.AccountCode
	row[colEntryDesc] = e.Description
	if !e.Debit.IsZero() {
		row[colDebit] = e.Debit.String()
	}
	if !e.Credit.IsZero() {
		row[colCredit] = e.Credit.String()
	}
	return row
}

func unmarshalRow(record []string) (model.Transaction, model.JournalEntry, error) {
	if len(record) != numFields {
		return model.Transaction{}, model.JournalEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colTxID] == "" {
		return model.Transaction{}, model.JournalEntry{}, fmt.Errorf("empty transaction_id")
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, model.JournalEntry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	total, err := parseAmount(record[colTotal], "total")
	if err != nil {
		return model.Transaction{}, model.JournalEntry{}, err
	}
	debit, err := parseAmount(record[colDebit], "debit")
	if err != nil {
		return model.Transaction{}, model.JournalEntry{}, err
	}
	credit, err := parseAmount(record[colCredit], "credit")
	if err != nil {
		return model.Transaction{}, model.JournalEntry{}, err
	}
	if debit.IsNegative() || credit.IsNegative() {
		return model.Transaction{}, model.JournalEntry{}, fmt.Errorf("negative debit or credit on transaction %s", record[colTxID])
	}

	tx := model.Transaction{
		ID:          record[colTxID],
		Date:        date,
		Type:        model.TransactionType(record[colType]),
		Description: record[colDesc],
		Reference:   record[colRef],
		Total:       total,
	}
	entry := model.JournalEntry{
		AccountCode: record[colAcctCode],
		Debit:       debit,
		Credit:      credit,
		Description: record[colEntryDesc],
	}
	return tx, entry, nil
}

func parseAmount(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
