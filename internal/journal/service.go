package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/tallybooks/tally/internal/model"
)

// Service loads posted transactions from a books directory. Journal files
// live at <booksRoot>/journal/<name>.csv, one file per year by convention,
// though any .csv in the directory is read.
type Service struct {
	booksRoot string
}

// NewService creates a journal Service rooted at a books directory.
func NewService(booksRoot string) *Service {
	return &Service{booksRoot: booksRoot}
}

// ReadAll reads every journal file under the books root, in file-name order.
// A missing journal directory yields no transactions and no error.
func (s *Service) ReadAll() ([]model.Transaction, error) {
	dir := filepath.Join(s.booksRoot, "journal")
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".csv" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var txs []model.Transaction
	for _, name := range names {
		path := filepath.Join(dir, name)
		fileTxs, err := s.readFile(path)
		if err != nil {
			return nil, err
		}
		txs = append(txs, fileTxs...)
	}
	return txs, nil
}

// Append writes transactions to the named journal file, creating the file
// and header if needed.
func (s *Service) Append(name string, txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dir := filepath.Join(s.booksRoot, "journal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	path := filepath.Join(dir, name)
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	for _, tx := range txs {
		for _, e := range tx.Entries {
			if err := cw.Write(marshalRow(tx, e)); err != nil {
				return fmt.Errorf("appending transaction %s: %w", tx.ID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Service) readFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	txs, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return txs, nil
}
