package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tallybooks/tally/internal/cashflow"
	"github.com/tallybooks/tally/internal/config"
	"github.com/tallybooks/tally/internal/ledger"
	"github.com/tallybooks/tally/internal/model"
)

// Handler serves ledger, trial-balance and cash-flow reports over a
// snapshot of accounts and transactions taken at construction time.
type Handler struct {
	accounts     ledger.Registry
	transactions []model.Transaction
	reports      config.ReportsConfig
	logger       zerolog.Logger
}

// NewHandler creates a report Handler over a consistent snapshot.
func NewHandler(accounts ledger.Registry, transactions []model.Transaction, reports config.ReportsConfig, logger zerolog.Logger) *Handler {
	return &Handler{
		accounts:     accounts,
		transactions: transactions,
		reports:      reports,
		logger:       logger,
	}
}

// Routes registers the report endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/ledger", h.ledger)
	r.Get("/trial-balance", h.trialBalance)
	r.Get("/cash-flow", h.cashFlow)
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := ledger.Build(h.accounts, h.transactions, window)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidWindow) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.respond(w, toLedgerResponse(report))
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid as_of date", http.StatusBadRequest)
			return
		}
		asOf = t
	}

	report, err := ledger.TrialBalance(h.accounts, h.transactions, asOf)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.respond(w, toTrialBalanceResponse(report))
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	opts := cashflow.Options{
		Months:         h.reports.CashFlowMonths,
		IncludeOpening: h.reports.CashFlowOpening,
	}

	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}
		opts.Months = n
	}
	if s := r.URL.Query().Get("opening"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid opening", http.StatusBadRequest)
			return
		}
		opts.IncludeOpening = b
	}

	points := cashflow.Project(h.transactions, opts)
	h.respond(w, toCashFlowResponse(points))
}

func (h *Handler) respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func windowFromQuery(r *http.Request) (*ledger.Window, error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, errors.New("start and end must be given together")
	}

	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return nil, errors.New("invalid start date")
	}
	end, err := time.Parse(time.DateOnly, endStr)
	if err != nil {
		return nil, errors.New("invalid end date")
	}
	return &ledger.Window{Start: start, End: end}, nil
}
