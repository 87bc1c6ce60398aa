// Package recurring materializes recurring transaction templates into
// posted transactions. The runner is invoked explicitly by its caller (CLI
// or external scheduler), carries an injectable clock, and derives
// idempotent occurrence IDs so a re-run never posts a duplicate. It only
// creates transactions; it never computes balances.
package recurring

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tallybooks/tally/internal/id"
	"github.com/tallybooks/tally/internal/model"
)

// Interval is how often a template recurs.
type Interval string

const (
	Weekly  Interval = "weekly"
	Monthly Interval = "monthly"
)

// EntryTemplate is one journal entry of a template, amounts fixed per
// occurrence.
type EntryTemplate struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// Template describes a recurring transaction: what to post and how often,
// starting from (and including) Start.
type Template struct {
	ID          string
	Description string
	Type        model.TransactionType
	Reference   string
	Total       decimal.Decimal
	Start       time.Time
	Every       Interval
	Entries     []EntryTemplate
}

// NewTemplateID returns a fresh template identifier.
func NewTemplateID() string {
	return uuid.NewString()
}

// Runner materializes due template occurrences. existing holds the IDs of
// already-posted transactions; occurrences whose ID is present are skipped,
// so running twice over the same books is a no-op.
type Runner struct {
	now      func() time.Time
	existing map[string]bool
}

// NewRunner creates a Runner. A nil clock means time.Now.
func NewRunner(existingIDs []string, now func() time.Time) *Runner {
	if now == nil {
		now = time.Now
	}
	existing := make(map[string]bool, len(existingIDs))
	for _, txID := range existingIDs {
		existing[txID] = true
	}
	return &Runner{now: now, existing: existing}
}

// Due returns the transactions for every occurrence of tpl due on or before
// the current time that has not already been posted, in chronological order.
func (r *Runner) Due(tpl Template) ([]model.Transaction, error) {
	if tpl.ID == "" {
		return nil, fmt.Errorf("template has no ID")
	}
	step, err := stepFor(tpl.Every)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", tpl.ID, err)
	}

	var txs []model.Transaction
	cutoff := r.now()
	for due := tpl.Start; !due.After(cutoff); due = step(due) {
		occID := id.Occurrence(tpl.ID, due)
		if r.existing[occID] {
			continue
		}
		r.existing[occID] = true
		txs = append(txs, materialize(tpl, occID, due))
	}
	return txs, nil
}

// DueAll runs Due over a set of templates.
func (r *Runner) DueAll(tpls []Template) ([]model.Transaction, error) {
	var txs []model.Transaction
	for _, tpl := range tpls {
		due, err := r.Due(tpl)
		if err != nil {
			return nil, err
		}
		txs = append(txs, due...)
	}
	return txs, nil
}

func stepFor(every Interval) (func(time.Time) time.Time, error) {
	switch every {
	case Weekly:
		return func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }, nil
	case Monthly:
		return func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }, nil
	default:
		return nil, fmt.Errorf("unknown interval %q", every)
	}
}

func materialize(tpl Template, occID string, due time.Time) model.Transaction {
	tx := model.Transaction{
		ID:          occID,
		Date:        due,
		Type:        tpl.Type,
		Description: tpl.Description,
		Reference:   tpl.Reference,
		Total:       tpl.Total,
	}
	for _, e := range tpl.Entries {
		tx.Entries = append(tx.Entries, model.JournalEntry{
			AccountCode: e.AccountCode,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Description: e.Description,
		})
	}
	return tx
}

// yamlTemplate mirrors Template for recurring.yaml; amounts are strings
// because decimal.Decimal has no YAML unmarshaler.
type yamlTemplate struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Type        string      `yaml:"type"`
	Reference   string      `yaml:"reference,omitempty"`
	Total       string      `yaml:"total"`
	Start       time.Time   `yaml:"start"`
	Every       string      `yaml:"every"`
	Entries     []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Account     string `yaml:"account"`
	Debit       string `yaml:"debit,omitempty"`
	Credit      string `yaml:"credit,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// LoadTemplates reads recurring templates from a YAML file. A missing file
// yields no templates and no error.
func LoadTemplates(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	var doc struct {
		Templates []yamlTemplate `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	tpls := make([]Template, 0, len(doc.Templates))
	for i, yt := range doc.Templates {
		tpl, err := yt.template()
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i+1, err)
		}
		tpls = append(tpls, tpl)
	}
	return tpls, nil
}

func (yt yamlTemplate) template() (Template, error) {
	if yt.ID == "" {
		return Template{}, fmt.Errorf("missing id")
	}

	total, err := parseAmount(yt.Total)
	if err != nil {
		return Template{}, fmt.Errorf("total: %w", err)
	}

	tpl := Template{
		ID:          yt.ID,
		Description: yt.Description,
		Type:        model.TransactionType(yt.Type),
		Reference:   yt.Reference,
		Total:       total,
		Start:       yt.Start,
		Every:       Interval(yt.Every),
	}
	for j, ye := range yt.Entries {
		debit, err := parseAmount(ye.Debit)
		if err != nil {
			return Template{}, fmt.Errorf("entry %d debit: %w", j+1, err)
		}
		credit, err := parseAmount(ye.Credit)
		if err != nil {
			return Template{}, fmt.Errorf("entry %d credit: %w", j+1, err)
		}
		tpl.Entries = append(tpl.Entries, EntryTemplate{
			AccountCode: ye.Account,
			Debit:       debit,
			Credit:      credit,
			Description: ye.Description,
		})
	}
	return tpl, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
