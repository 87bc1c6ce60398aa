package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally/internal/cashflow"
	"github.com/tallybooks/tally/internal/journal"
	"github.com/tallybooks/tally/internal/ledger"
)

// Decimals serialize as JSON strings (shopspring's default); display
// rounding is the client's job.

type problemResponse struct {
	Kind          string `json:"kind"`
	TransactionID string `json:"transaction_id"`
	AccountCode   string `json:"account_code,omitempty"`
	Detail        string `json:"detail"`
}

type summaryResponse struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

type lineResponse struct {
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type ledgerResponse struct {
	Summaries []summaryResponse         `json:"summaries"`
	Lines     map[string][]lineResponse `json:"lines"`
	Problems  []problemResponse         `json:"problems"`
}

func toLedgerResponse(report *ledger.Report) ledgerResponse {
	resp := ledgerResponse{
		Summaries: make([]summaryResponse, 0, len(report.Summaries)),
		Lines:     make(map[string][]lineResponse, len(report.Lines)),
		Problems:  toProblemResponses(report.Problems),
	}
	for _, s := range report.Summaries {
		resp.Summaries = append(resp.Summaries, summaryResponse{
			Code:           s.Code,
			Name:           s.Name,
			Type:           string(s.Type),
			TotalDebits:    s.TotalDebits,
			TotalCredits:   s.TotalCredits,
			ClosingBalance: s.ClosingBalance,
		})
	}
	for code, lines := range report.Lines {
		out := make([]lineResponse, 0, len(lines))
		for _, l := range lines {
			out = append(out, lineResponse{
				Date:        l.Date.Format(time.DateOnly),
				Description: l.Description,
				Reference:   l.Reference,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Balance:     l.Balance,
			})
		}
		resp.Lines[code] = out
	}
	return resp
}

type trialBalanceRowResponse struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

type trialBalanceResponse struct {
	AsOf        string                    `json:"as_of"`
	Rows        []trialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
	Balanced    bool                      `json:"balanced"`
	Problems    []problemResponse         `json:"problems"`
}

func toTrialBalanceResponse(report *ledger.TrialBalanceReport) trialBalanceResponse {
	resp := trialBalanceResponse{
		AsOf:        report.AsOf.Format(time.DateOnly),
		Rows:        make([]trialBalanceRowResponse, 0, len(report.Rows)),
		TotalDebit:  report.TotalDebit,
		TotalCredit: report.TotalCredit,
		Balanced:    report.Balanced(),
		Problems:    toProblemResponses(report.Problems),
	}
	for _, row := range report.Rows {
		resp.Rows = append(resp.Rows, trialBalanceRowResponse{
			Code:   row.Code,
			Name:   row.Name,
			Type:   string(row.Type),
			Debit:  row.Debit,
			Credit: row.Credit,
		})
	}
	return resp
}

type cashFlowPointResponse struct {
	Month   string          `json:"month"`
	Balance decimal.Decimal `json:"balance"`
}

func toCashFlowResponse(points []cashflow.Point) []cashFlowPointResponse {
	resp := make([]cashFlowPointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, cashFlowPointResponse{Month: p.Month, Balance: p.Balance})
	}
	return resp
}

func toProblemResponses(problems []journal.Problem) []problemResponse {
	resp := make([]problemResponse, 0, len(problems))
	for _, p := range problems {
		resp = append(resp, problemResponse{
			Kind:          string(p.Kind),
			TransactionID: p.TransactionID,
			AccountCode:   p.AccountCode,
			Detail:        p.String(),
		})
	}
	return resp
}
