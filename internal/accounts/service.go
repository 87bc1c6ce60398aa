package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tallybooks/tally/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Codes are unique;
// when a duplicate appears, the first occurrence wins and later ones are
// ignored.
func NewService(accounts []model.Account) *Service {
	byCode := make(map[string]model.Account, len(accounts))
	kept := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, seen := byCode[a.Code]; seen {
			continue
		}
		byCode[a.Code] = a
		kept = append(kept, a)
	}
	return &Service{accounts: kept, byCode: byCode}
}

// Load reads chart-of-accounts.csv from a books root and returns a Service.
func Load(booksRoot string) (*Service, error) {
	path := filepath.Join(booksRoot, "accounts", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Lookup returns an account by code.
func (s *Service) Lookup(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(booksRoot string) error {
	dir := filepath.Join(booksRoot, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
