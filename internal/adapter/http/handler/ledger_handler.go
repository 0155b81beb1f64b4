package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gaapledger/internal/adapter/http/dto"
	"github.com/iho/gaapledger/internal/domain"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	BalanceSheet(ctx context.Context, bookID string, asOf time.Time) (domain.BalanceSheet, error)
	IncomeStatement(ctx context.Context, bookID string, start, end time.Time) (domain.IncomeStatement, error)
	CashFlow(ctx context.Context, bookID string, start, end time.Time) (domain.CashFlowStatement, error)
	TrialBalance(ctx context.Context, bookID string, asOf time.Time) (domain.TrialBalance, error)
	CheckConsistency(ctx context.Context, bookID string) (bool, error)
}

// LedgerHandler serves financial reports and consistency checks.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// BalanceSheet reports the position as of ?as_of.
func (h *LedgerHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateQuery(r, "as_of")
	if err != nil {
		writeDomainError(w, "invalid date", err)
		return
	}

	sheet, err := h.ledgerUC.BalanceSheet(r.Context(), chi.URLParam(r, "bookID"), asOf)
	if err != nil {
		writeDomainError(w, "failed to build balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}

// IncomeStatement reports income and expenses between ?start and ?end.
func (h *LedgerHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriod(r)
	if err != nil {
		writeDomainError(w, "invalid date", err)
		return
	}

	stmt, err := h.ledgerUC.IncomeStatement(r.Context(), chi.URLParam(r, "bookID"), start, end)
	if err != nil {
		writeDomainError(w, "failed to build income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(stmt))
}

// CashFlow reports cash movement between ?start and ?end.
func (h *LedgerHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriod(r)
	if err != nil {
		writeDomainError(w, "invalid date", err)
		return
	}

	stmt, err := h.ledgerUC.CashFlow(r.Context(), chi.URLParam(r, "bookID"), start, end)
	if err != nil {
		writeDomainError(w, "failed to build cash flow statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CashFlowFromDomain(stmt))
}

// TrialBalance lists every account as of ?as_of.
func (h *LedgerHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateQuery(r, "as_of")
	if err != nil {
		writeDomainError(w, "invalid date", err)
		return
	}

	tb, err := h.ledgerUC.TrialBalance(r.Context(), chi.URLParam(r, "bookID"), asOf)
	if err != nil {
		writeDomainError(w, "failed to build trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(tb))
}

// CheckConsistency checks if the ledger is consistent.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	consistent, err := h.ledgerUC.CheckConsistency(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, dto.ConsistencyResponse{
				Status:     "inconsistent",
				Consistent: false,
				Message:    err.Error(),
			})
			return
		}
		writeDomainError(w, "failed to check consistency", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{
		Status:     "consistent",
		Consistent: consistent,
	})
}

func parsePeriod(r *http.Request) (start, end time.Time, err error) {
	if start, err = parseDateQuery(r, "start"); err != nil {
		return
	}
	end, err = parseDateQuery(r, "end")
	return
}
